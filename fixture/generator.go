package fixture

import (
	"context"
	"time"

	"github.com/ligaregional/league-system/models"
)

// Round is one week of the schedule. Number is 1-based and contiguous;
// a round is kept even when every pairing in it was dropped.
type Round struct {
	Number   int       `json:"number"`
	Date     time.Time `json:"date"`
	Pairings []Pairing `json:"pairings"`
}

// Pairing is one home/away meeting of two clubs within a round,
// expanded into one sub-match per series both clubs field.
type Pairing struct {
	Home       *models.Club `json:"home"`
	Away       *models.Club `json:"away"`
	SubMatches []SubMatch   `json:"sub_matches"`
}

// SubMatch is the preview-stage match of a single series. It carries no
// database identity; committing a fixture materializes each sub-match
// into a models.Match row.
type SubMatch struct {
	Series  models.Series    `json:"series"`
	Time    models.TimeOfDay `json:"time"`
	Kickoff time.Time        `json:"kickoff"`
}

type GenerateFixtureParams struct {
	Clubs     []*models.Club
	StartDate time.Time
	Kickoffs  models.KickoffSchedule
}

type FixtureGenerator interface {
	GenerateFixture(ctx context.Context, params GenerateFixtureParams) ([]Round, error)

	GetName() string
}

package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusSuspended MatchStatus = "suspended"
)

// Match is one persisted sub-match of a round pairing. Scores are
// meaningful only when Status is finished; CulpritClubID and
// SuspensionReason only when Status is suspended. A suspended match may
// still carry a partial score (play stopped mid-game); when a culprit
// is set, the culprit decides the standings outcome, not the score.
type Match struct {
	ID         int         `json:"id" db:"id"`
	Round      int         `json:"round" db:"round"`
	HomeClubID int         `json:"home_club_id" db:"home_club_id"`
	AwayClubID int         `json:"away_club_id" db:"away_club_id"`
	Series     Series      `json:"series" db:"series"`
	Division   Division    `json:"division" db:"division"`
	Kickoff    time.Time   `json:"kickoff" db:"kickoff"`
	Status     MatchStatus `json:"status" db:"status"`
	HomeGoals  *int        `json:"home_goals,omitempty" db:"home_goals"`
	AwayGoals  *int        `json:"away_goals,omitempty" db:"away_goals"`

	CulpritClubID    *int    `json:"culprit_club_id,omitempty" db:"culprit_club_id"`
	SuspensionReason *string `json:"suspension_reason,omitempty" db:"suspension_reason"`
}

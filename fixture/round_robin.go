package fixture

import (
	"context"
	"time"

	"github.com/ligaregional/league-system/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() FixtureGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateFixture builds a single round-robin schedule with the circle
// method: position 0 stays fixed and the rest of the list rotates one
// step after each round, so every club meets every other exactly once
// across n-1 rounds. An odd club count gets a nil bye slot appended;
// pairings touching the bye slot are skipped, which gives each real
// club exactly one round off. Rounds are a week apart starting at
// params.StartDate.
//
// Fewer than two clubs yields an empty schedule rather than an error:
// the generator stays total over its inputs and callers validate
// upstream.
func (g *RoundRobinGenerator) GenerateFixture(_ context.Context, params GenerateFixtureParams) ([]Round, error) {
	if len(params.Clubs) < 2 {
		return []Round{}, nil
	}

	clubs := make([]*models.Club, len(params.Clubs))
	copy(clubs, params.Clubs)
	if len(clubs)%2 != 0 {
		clubs = append(clubs, nil) // bye slot
	}

	n := len(clubs)
	roundsCount := n - 1
	pairsPerRound := n / 2

	// Rebuild the start date from its components so the weekly step is
	// pure day arithmetic, immune to timezone drift.
	start := time.Date(params.StartDate.Year(), params.StartDate.Month(), params.StartDate.Day(), 0, 0, 0, 0, params.StartDate.Location())

	rounds := make([]Round, 0, roundsCount)
	for r := 0; r < roundsCount; r++ {
		date := start.AddDate(0, 0, r*7)

		pairings := make([]Pairing, 0, pairsPerRound)
		for i := 0; i < pairsPerRound; i++ {
			first, second := clubs[i], clubs[n-1-i]
			if first == nil || second == nil {
				continue
			}

			// Alternate which side of the pair is home by round parity,
			// otherwise the circle method hands the same side home
			// advantage all season.
			home, away := first, second
			if r%2 != 0 {
				home, away = second, first
			}

			subMatches := make([]SubMatch, 0, len(models.AllSeries))
			for _, series := range models.AllSeries {
				timeOfDay, configured := params.Kickoffs[series]
				if !configured {
					continue
				}
				if !home.FieldsSeries(series) || !away.FieldsSeries(series) {
					continue
				}
				subMatches = append(subMatches, SubMatch{
					Series:  series,
					Time:    timeOfDay,
					Kickoff: timeOfDay.On(date),
				})
			}
			if len(subMatches) == 0 {
				// The two clubs share no series, nothing to play.
				continue
			}

			pairings = append(pairings, Pairing{
				Home:       home,
				Away:       away,
				SubMatches: subMatches,
			})
		}

		// Rounds survive even with every pairing dropped; the round
		// numbering and dates must stay contiguous.
		rounds = append(rounds, Round{
			Number:   r + 1,
			Date:     date,
			Pairings: pairings,
		})

		// Circle rotation: position 0 is the pivot, the last club moves
		// to position 1 and everything else shifts right.
		last := clubs[n-1]
		copy(clubs[2:], clubs[1:n-1])
		clubs[1] = last
	}

	return rounds, nil
}

package fixture

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ligaregional/league-system/models"
)

func testClub(id int, series ...models.Series) *models.Club {
	club := &models.Club{
		ID:       id,
		Name:     fmt.Sprintf("Club %d", id),
		Division: models.DivisionA,
	}
	for _, s := range series {
		switch s {
		case models.SeriesPrimera:
			club.Primera = true
		case models.SeriesSegunda:
			club.Segunda = true
		case models.SeriesSuperSenior:
			club.SuperSenior = true
		}
	}
	return club
}

func allSeriesClubs(n int) []*models.Club {
	clubs := make([]*models.Club, 0, n)
	for i := 1; i <= n; i++ {
		clubs = append(clubs, testClub(i, models.AllSeries...))
	}
	return clubs
}

func primeraKickoff() models.KickoffSchedule {
	return models.KickoffSchedule{
		models.SeriesPrimera: {Hour: 13, Minute: 0},
	}
}

func pairKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

func TestGenerateFixtureEveryPairExactlyOnce(t *testing.T) {
	tests := []struct {
		clubCount  int
		wantRounds int
	}{
		{clubCount: 4, wantRounds: 3},
		{clubCount: 6, wantRounds: 5},
		{clubCount: 8, wantRounds: 7},
	}

	gen := NewRoundRobinGenerator()
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_clubs", tt.clubCount), func(t *testing.T) {
			rounds, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
				Clubs:     allSeriesClubs(tt.clubCount),
				StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Kickoffs:  primeraKickoff(),
			})
			if err != nil {
				t.Fatalf("GenerateFixture returned error: %v", err)
			}
			if len(rounds) != tt.wantRounds {
				t.Fatalf("got %d rounds, want %d", len(rounds), tt.wantRounds)
			}

			seen := make(map[string]int)
			for _, round := range rounds {
				if len(round.Pairings) != tt.clubCount/2 {
					t.Errorf("round %d has %d pairings, want %d", round.Number, len(round.Pairings), tt.clubCount/2)
				}
				for _, p := range round.Pairings {
					seen[pairKey(p.Home.ID, p.Away.ID)]++
				}
			}

			wantPairs := tt.clubCount * (tt.clubCount - 1) / 2
			if len(seen) != wantPairs {
				t.Errorf("got %d distinct pairs, want %d", len(seen), wantPairs)
			}
			for key, count := range seen {
				if count != 1 {
					t.Errorf("pair %s scheduled %d times, want 1", key, count)
				}
			}
		})
	}
}

func TestGenerateFixtureOddClubCountGivesByes(t *testing.T) {
	gen := NewRoundRobinGenerator()
	rounds, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
		Clubs:     allSeriesClubs(5),
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Kickoffs:  primeraKickoff(),
	})
	if err != nil {
		t.Fatalf("GenerateFixture returned error: %v", err)
	}
	if len(rounds) != 5 {
		t.Fatalf("got %d rounds, want 5", len(rounds))
	}

	appearances := make(map[int]int)
	for _, round := range rounds {
		if len(round.Pairings) != 2 {
			t.Errorf("round %d has %d pairings, want 2", round.Number, len(round.Pairings))
		}
		for _, p := range round.Pairings {
			appearances[p.Home.ID]++
			appearances[p.Away.ID]++
			if len(p.SubMatches) != 1 {
				t.Errorf("round %d pairing has %d sub-matches, want 1", round.Number, len(p.SubMatches))
			}
		}
	}

	// Each club sits out exactly one round.
	for id := 1; id <= 5; id++ {
		if appearances[id] != 4 {
			t.Errorf("club %d plays %d rounds, want 4", id, appearances[id])
		}
	}
}

func TestGenerateFixtureHomeAwayBalance(t *testing.T) {
	gen := NewRoundRobinGenerator()
	rounds, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
		Clubs:     allSeriesClubs(4),
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Kickoffs:  primeraKickoff(),
	})
	if err != nil {
		t.Fatalf("GenerateFixture returned error: %v", err)
	}

	homeCount := make(map[int]int)
	for _, round := range rounds {
		for _, p := range round.Pairings {
			homeCount[p.Home.ID]++
		}
	}

	// 3 matches per club; home games must split 1/2 or 2/1.
	for id := 1; id <= 4; id++ {
		if homeCount[id] < 1 || homeCount[id] > 2 {
			t.Errorf("club %d is home %d times, want 1 or 2", id, homeCount[id])
		}
	}
}

func TestGenerateFixtureWeeklyDates(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	gen := NewRoundRobinGenerator()
	rounds, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
		Clubs:     allSeriesClubs(5),
		StartDate: start,
		Kickoffs:  primeraKickoff(),
	})
	if err != nil {
		t.Fatalf("GenerateFixture returned error: %v", err)
	}

	for i, round := range rounds {
		if round.Number != i+1 {
			t.Errorf("round at index %d numbered %d, want %d", i, round.Number, i+1)
		}
		want := start.AddDate(0, 0, i*7)
		if !round.Date.Equal(want) {
			t.Errorf("round %d dated %s, want %s", round.Number, round.Date, want)
		}
	}

	last := rounds[len(rounds)-1]
	if got, want := last.Date, time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("final round dated %s, want %s", got, want)
	}

	for _, p := range rounds[0].Pairings {
		for _, sm := range p.SubMatches {
			if sm.Kickoff.Hour() != 13 || sm.Kickoff.Minute() != 0 {
				t.Errorf("sub-match kicks off at %02d:%02d, want 13:00", sm.Kickoff.Hour(), sm.Kickoff.Minute())
			}
			if !sm.Kickoff.Truncate(24 * time.Hour).Equal(rounds[0].Date) {
				t.Errorf("sub-match kickoff %s not on round date %s", sm.Kickoff, rounds[0].Date)
			}
		}
	}
}

func TestGenerateFixtureFewerThanTwoClubs(t *testing.T) {
	gen := NewRoundRobinGenerator()
	for _, clubs := range [][]*models.Club{nil, {testClub(1, models.SeriesPrimera)}} {
		rounds, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
			Clubs:     clubs,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Kickoffs:  primeraKickoff(),
		})
		if err != nil {
			t.Fatalf("GenerateFixture returned error: %v", err)
		}
		if rounds == nil {
			t.Error("got nil rounds, want empty slice")
		}
		if len(rounds) != 0 {
			t.Errorf("got %d rounds with %d clubs, want 0", len(rounds), len(clubs))
		}
	}
}

func TestGenerateFixtureSeriesGating(t *testing.T) {
	// One club fields both series, the other only primera: the segunda
	// sub-match must not be scheduled even with a kickoff configured.
	clubs := []*models.Club{
		testClub(1, models.SeriesPrimera, models.SeriesSegunda),
		testClub(2, models.SeriesPrimera),
	}
	kickoffs := models.KickoffSchedule{
		models.SeriesPrimera: {Hour: 13, Minute: 0},
		models.SeriesSegunda: {Hour: 11, Minute: 30},
	}

	gen := NewRoundRobinGenerator()
	rounds, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
		Clubs:     clubs,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Kickoffs:  kickoffs,
	})
	if err != nil {
		t.Fatalf("GenerateFixture returned error: %v", err)
	}
	if len(rounds) != 1 || len(rounds[0].Pairings) != 1 {
		t.Fatalf("got %d rounds, want 1 round with 1 pairing", len(rounds))
	}

	subMatches := rounds[0].Pairings[0].SubMatches
	if len(subMatches) != 1 {
		t.Fatalf("got %d sub-matches, want 1", len(subMatches))
	}
	if subMatches[0].Series != models.SeriesPrimera {
		t.Errorf("got sub-match series %s, want %s", subMatches[0].Series, models.SeriesPrimera)
	}
}

func TestGenerateFixtureUnconfiguredSeriesSkipped(t *testing.T) {
	// Both clubs field segunda but no kickoff time is configured for it.
	clubs := []*models.Club{
		testClub(1, models.SeriesPrimera, models.SeriesSegunda),
		testClub(2, models.SeriesPrimera, models.SeriesSegunda),
	}

	gen := NewRoundRobinGenerator()
	rounds, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
		Clubs:     clubs,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Kickoffs:  primeraKickoff(),
	})
	if err != nil {
		t.Fatalf("GenerateFixture returned error: %v", err)
	}

	subMatches := rounds[0].Pairings[0].SubMatches
	if len(subMatches) != 1 || subMatches[0].Series != models.SeriesPrimera {
		t.Errorf("got sub-matches %+v, want single primera sub-match", subMatches)
	}
}

func TestGenerateFixturePairingDroppedWithoutSharedSeries(t *testing.T) {
	clubs := []*models.Club{
		testClub(1, models.SeriesPrimera),
		testClub(2, models.SeriesSegunda),
	}
	kickoffs := models.KickoffSchedule{
		models.SeriesPrimera: {Hour: 13, Minute: 0},
		models.SeriesSegunda: {Hour: 11, Minute: 30},
	}

	gen := NewRoundRobinGenerator()
	rounds, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
		Clubs:     clubs,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Kickoffs:  kickoffs,
	})
	if err != nil {
		t.Fatalf("GenerateFixture returned error: %v", err)
	}

	// The round survives with its date even though the only pairing in
	// it had nothing to play.
	if len(rounds) != 1 {
		t.Fatalf("got %d rounds, want 1", len(rounds))
	}
	if len(rounds[0].Pairings) != 0 {
		t.Errorf("got %d pairings, want 0", len(rounds[0].Pairings))
	}
}

func TestGenerateFixtureDoesNotMutateInput(t *testing.T) {
	clubs := allSeriesClubs(5)

	gen := NewRoundRobinGenerator()
	if _, err := gen.GenerateFixture(context.Background(), GenerateFixtureParams{
		Clubs:     clubs,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Kickoffs:  primeraKickoff(),
	}); err != nil {
		t.Fatalf("GenerateFixture returned error: %v", err)
	}

	if len(clubs) != 5 {
		t.Fatalf("input slice grew to %d entries", len(clubs))
	}
	for i, club := range clubs {
		if club == nil || club.ID != i+1 {
			t.Errorf("input slice reordered at index %d", i)
		}
	}
}

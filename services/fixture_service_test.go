package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ligaregional/league-system/fixture"
	"github.com/ligaregional/league-system/models"
)

type stubClubRepository struct {
	clubsByID map[int]*models.Club
}

func (s *stubClubRepository) Create(ctx context.Context, club *models.Club) error { return nil }

func (s *stubClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	club, ok := s.clubsByID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return club, nil
}

func (s *stubClubRepository) ListByIDs(ctx context.Context, ids []int) ([]*models.Club, error) {
	clubs := make([]*models.Club, 0, len(ids))
	for _, id := range ids {
		if club, ok := s.clubsByID[id]; ok {
			clubs = append(clubs, club)
		}
	}
	return clubs, nil
}

func (s *stubClubRepository) ListByDivision(ctx context.Context, division models.Division) ([]*models.Club, error) {
	return nil, nil
}

func (s *stubClubRepository) ListAll(ctx context.Context) ([]*models.Club, error) { return nil, nil }

func (s *stubClubRepository) Update(ctx context.Context, club *models.Club) error { return nil }

func (s *stubClubRepository) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	return nil
}

func (s *stubClubRepository) Delete(ctx context.Context, id int) error { return nil }

func previewTestService(clubs ...*models.Club) FixtureService {
	repo := &stubClubRepository{clubsByID: make(map[int]*models.Club)}
	for _, club := range clubs {
		repo.clubsByID[club.ID] = club
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFixtureService(nil, repo, nil, fixture.NewRoundRobinGenerator(), nil, nil, logger)
}

func previewClub(id int, division models.Division) *models.Club {
	return &models.Club{ID: id, Name: "Club", Division: division, Primera: true}
}

func TestPreviewFixtureGeneratesRounds(t *testing.T) {
	svc := previewTestService(
		previewClub(1, models.DivisionA),
		previewClub(2, models.DivisionA),
		previewClub(3, models.DivisionA),
		previewClub(4, models.DivisionA),
	)

	rounds, err := svc.PreviewFixture(context.Background(), PreviewFixtureInput{
		ClubIDs:      []int{1, 2, 3, 4},
		StartDate:    "2025-03-01",
		KickoffTimes: map[string]string{"primera": "13:00"},
	})
	if err != nil {
		t.Fatalf("PreviewFixture returned error: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("got %d rounds, want 3", len(rounds))
	}
	if got := rounds[0].Date.Format("2006-01-02"); got != "2025-03-01" {
		t.Errorf("first round dated %s, want 2025-03-01", got)
	}
}

func TestPreviewFixtureInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   PreviewFixtureInput
		wantErr error
	}{
		{
			name: "bad start date",
			input: PreviewFixtureInput{
				ClubIDs:      []int{1, 2},
				StartDate:    "01-03-2025",
				KickoffTimes: map[string]string{"primera": "13:00"},
			},
			wantErr: ErrFixtureInvalidStartDate,
		},
		{
			name: "unknown series",
			input: PreviewFixtureInput{
				ClubIDs:      []int{1, 2},
				StartDate:    "2025-03-01",
				KickoffTimes: map[string]string{"tercera": "13:00"},
			},
			wantErr: models.ErrInvalidSeries,
		},
		{
			name: "bad kickoff time",
			input: PreviewFixtureInput{
				ClubIDs:      []int{1, 2},
				StartDate:    "2025-03-01",
				KickoffTimes: map[string]string{"primera": "25:00"},
			},
			wantErr: models.ErrInvalidTimeOfDay,
		},
		{
			name: "no kickoff times",
			input: PreviewFixtureInput{
				ClubIDs:      []int{1, 2},
				StartDate:    "2025-03-01",
				KickoffTimes: map[string]string{},
			},
			wantErr: ErrFixtureNoKickoffTimes,
		},
		{
			name: "too few clubs",
			input: PreviewFixtureInput{
				ClubIDs:      []int{1},
				StartDate:    "2025-03-01",
				KickoffTimes: map[string]string{"primera": "13:00"},
			},
			wantErr: ErrFixtureNeedsTwoClubs,
		},
	}

	svc := previewTestService(
		previewClub(1, models.DivisionA),
		previewClub(2, models.DivisionA),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PreviewFixture(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPreviewFixtureRejectsMixedDivisions(t *testing.T) {
	svc := previewTestService(
		previewClub(1, models.DivisionA),
		previewClub(2, models.DivisionB),
	)

	_, err := svc.PreviewFixture(context.Background(), PreviewFixtureInput{
		ClubIDs:      []int{1, 2},
		StartDate:    "2025-03-01",
		KickoffTimes: map[string]string{"primera": "13:00"},
	})
	if !errors.Is(err, ErrFixtureMixedDivisions) {
		t.Errorf("got error %v, want %v", err, ErrFixtureMixedDivisions)
	}
}

func TestPreviewFixtureSkipsUnknownClubIDs(t *testing.T) {
	svc := previewTestService(
		previewClub(1, models.DivisionA),
	)

	// Only one of the requested clubs exists, so the preview cannot run.
	_, err := svc.PreviewFixture(context.Background(), PreviewFixtureInput{
		ClubIDs:      []int{1, 99},
		StartDate:    "2025-03-01",
		KickoffTimes: map[string]string{"primera": "13:00"},
	})
	if !errors.Is(err, ErrFixtureNeedsTwoClubs) {
		t.Errorf("got error %v, want %v", err, ErrFixtureNeedsTwoClubs)
	}
}

func TestCommitFixtureRejectsEmptyRounds(t *testing.T) {
	svc := previewTestService()

	_, err := svc.CommitFixture(context.Background(), CommitFixtureInput{
		Division: models.DivisionA,
		Rounds:   []fixture.Round{},
	})
	if !errors.Is(err, ErrFixtureEmpty) {
		t.Errorf("got error %v, want %v", err, ErrFixtureEmpty)
	}
}

func TestCommitFixtureRejectsUnknownDivision(t *testing.T) {
	svc := previewTestService()

	_, err := svc.CommitFixture(context.Background(), CommitFixtureInput{Division: "C"})
	if !errors.Is(err, models.ErrInvalidDivision) {
		t.Errorf("got error %v, want %v", err, models.ErrInvalidDivision)
	}
}

func TestFlattenRoundsMaterializesSubMatches(t *testing.T) {
	home := previewClub(1, models.DivisionA)
	away := previewClub(2, models.DivisionA)
	rounds := []fixture.Round{
		{
			Number: 1,
			Pairings: []fixture.Pairing{
				{
					Home: home,
					Away: away,
					SubMatches: []fixture.SubMatch{
						{Series: models.SeriesPrimera},
						{Series: models.SeriesSegunda},
					},
				},
				{Home: nil, Away: away}, // dropped
			},
		},
		{
			Number: 2,
			Pairings: []fixture.Pairing{
				{
					Home:       away,
					Away:       home,
					SubMatches: []fixture.SubMatch{{Series: models.SeriesPrimera}},
				},
			},
		},
	}

	matches := flattenRounds(rounds, models.DivisionA)

	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	for _, match := range matches {
		if match.Status != models.MatchStatusScheduled {
			t.Errorf("match created with status %s, want %s", match.Status, models.MatchStatusScheduled)
		}
		if match.Division != models.DivisionA {
			t.Errorf("match created in division %s, want A", match.Division)
		}
	}
	if matches[0].Round != 1 || matches[2].Round != 2 {
		t.Errorf("round numbers %d and %d, want 1 and 2", matches[0].Round, matches[2].Round)
	}
	if matches[2].HomeClubID != 2 || matches[2].AwayClubID != 1 {
		t.Errorf("second-round match pairs %d vs %d, want 2 vs 1", matches[2].HomeClubID, matches[2].AwayClubID)
	}
}

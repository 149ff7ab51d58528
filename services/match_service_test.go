package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/repositories"
)

type stubMatchRepository struct {
	matchesByID map[int]*models.Match

	updateResultCalls     int
	updateSuspensionCalls int
	deleteCalls           int
}

func (s *stubMatchRepository) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	return nil
}

func (s *stubMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, ok := s.matchesByID[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (s *stubMatchRepository) List(ctx context.Context, filter repositories.MatchListFilter) ([]*models.Match, error) {
	return nil, nil
}

func (s *stubMatchRepository) UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int) error {
	s.updateResultCalls++
	match, ok := s.matchesByID[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Status = models.MatchStatusFinished
	match.HomeGoals = &homeGoals
	match.AwayGoals = &awayGoals
	match.CulpritClubID = nil
	match.SuspensionReason = nil
	return nil
}

func (s *stubMatchRepository) UpdateSuspension(ctx context.Context, id int, culpritClubID *int, reason *string) error {
	s.updateSuspensionCalls++
	match, ok := s.matchesByID[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Status = models.MatchStatusSuspended
	match.CulpritClubID = culpritClubID
	match.SuspensionReason = reason
	return nil
}

func (s *stubMatchRepository) Delete(ctx context.Context, id int) error {
	s.deleteCalls++
	if _, ok := s.matchesByID[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(s.matchesByID, id)
	return nil
}

func matchTestService(matches ...*models.Match) (MatchService, *stubMatchRepository) {
	repo := &stubMatchRepository{matchesByID: make(map[int]*models.Match)}
	for _, match := range matches {
		repo.matchesByID[match.ID] = match
	}
	return NewMatchService(repo, nil), repo
}

func scheduledMatch(id, homeID, awayID int) *models.Match {
	return &models.Match{
		ID:         id,
		Round:      1,
		HomeClubID: homeID,
		AwayClubID: awayID,
		Series:     models.SeriesPrimera,
		Division:   models.DivisionA,
		Status:     models.MatchStatusScheduled,
	}
}

func TestRecordResultRejectsNegativeScores(t *testing.T) {
	tests := []struct {
		name  string
		input RecordResultInput
	}{
		{name: "negative home goals", input: RecordResultInput{HomeGoals: -1, AwayGoals: 0}},
		{name: "negative away goals", input: RecordResultInput{HomeGoals: 2, AwayGoals: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := matchTestService(scheduledMatch(1, 10, 20))

			_, err := svc.RecordResult(context.Background(), 1, tt.input)
			if !errors.Is(err, ErrMatchScoreNegative) {
				t.Errorf("got error %v, want %v", err, ErrMatchScoreNegative)
			}
			if repo.updateResultCalls != 0 {
				t.Errorf("repository was updated %d times for an invalid score", repo.updateResultCalls)
			}
		})
	}
}

func TestRecordResultClearsSuspensionMetadata(t *testing.T) {
	// A previously suspended match that gets a final result must come
	// back finished with its culprit and reason wiped.
	culprit := 10
	reason := "floodlight failure"
	match := scheduledMatch(1, 10, 20)
	match.Status = models.MatchStatusSuspended
	match.CulpritClubID = &culprit
	match.SuspensionReason = &reason

	svc, repo := matchTestService(match)

	got, err := svc.RecordResult(context.Background(), 1, RecordResultInput{HomeGoals: 2, AwayGoals: 1})
	if err != nil {
		t.Fatalf("RecordResult returned error: %v", err)
	}
	if repo.updateResultCalls != 1 {
		t.Fatalf("repository UpdateResult called %d times, want 1", repo.updateResultCalls)
	}

	if got.Status != models.MatchStatusFinished {
		t.Errorf("match status %s, want %s", got.Status, models.MatchStatusFinished)
	}
	if got.HomeGoals == nil || *got.HomeGoals != 2 || got.AwayGoals == nil || *got.AwayGoals != 1 {
		t.Errorf("match scores not recorded: %+v", got)
	}
	if got.CulpritClubID != nil || got.SuspensionReason != nil {
		t.Errorf("suspension metadata survived a result: culprit=%v reason=%v", got.CulpritClubID, got.SuspensionReason)
	}
}

func TestRecordResultUnknownMatch(t *testing.T) {
	svc, _ := matchTestService()

	_, err := svc.RecordResult(context.Background(), 42, RecordResultInput{HomeGoals: 1, AwayGoals: 0})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("got error %v, want %v", err, ErrMatchNotFound)
	}
}

func TestSuspendMatchRejectsForeignCulprit(t *testing.T) {
	svc, repo := matchTestService(scheduledMatch(1, 10, 20))

	culprit := 99
	_, err := svc.SuspendMatch(context.Background(), 1, SuspendMatchInput{CulpritClubID: &culprit})
	if !errors.Is(err, ErrCulpritNotInMatch) {
		t.Errorf("got error %v, want %v", err, ErrCulpritNotInMatch)
	}
	if repo.updateSuspensionCalls != 0 {
		t.Errorf("repository was updated %d times for a foreign culprit", repo.updateSuspensionCalls)
	}
}

func TestSuspendMatchWithCulprit(t *testing.T) {
	for _, culprit := range []int{10, 20} {
		svc, _ := matchTestService(scheduledMatch(1, 10, 20))

		reason := "abandoned at half time"
		got, err := svc.SuspendMatch(context.Background(), 1, SuspendMatchInput{CulpritClubID: &culprit, Reason: &reason})
		if err != nil {
			t.Fatalf("SuspendMatch with culprit %d returned error: %v", culprit, err)
		}
		if got.Status != models.MatchStatusSuspended {
			t.Errorf("match status %s, want %s", got.Status, models.MatchStatusSuspended)
		}
		if got.CulpritClubID == nil || *got.CulpritClubID != culprit {
			t.Errorf("culprit not stored: %v", got.CulpritClubID)
		}
	}
}

func TestSuspendMatchWithoutCulprit(t *testing.T) {
	svc, _ := matchTestService(scheduledMatch(1, 10, 20))

	got, err := svc.SuspendMatch(context.Background(), 1, SuspendMatchInput{})
	if err != nil {
		t.Fatalf("SuspendMatch returned error: %v", err)
	}
	if got.Status != models.MatchStatusSuspended || got.CulpritClubID != nil {
		t.Errorf("match not parked as unadjudicated: %+v", got)
	}
}

func TestDeleteMatch(t *testing.T) {
	svc, repo := matchTestService(scheduledMatch(1, 10, 20))

	if err := svc.DeleteMatch(context.Background(), 1); err != nil {
		t.Fatalf("DeleteMatch returned error: %v", err)
	}
	if repo.deleteCalls != 1 {
		t.Errorf("repository Delete called %d times, want 1", repo.deleteCalls)
	}

	if err := svc.DeleteMatch(context.Background(), 1); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("got error %v, want %v", err, ErrMatchNotFound)
	}
}

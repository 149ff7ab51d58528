package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ligaregional/league-system/fixture"
	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/repositories"
)

var ErrMatchesListFailed = errors.New("failed to list matches")

type MatchService interface {
	ListMatches(ctx context.Context, filter repositories.MatchListFilter) ([]*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	RecordResult(ctx context.Context, id int, input RecordResultInput) (*models.Match, error)
	SuspendMatch(ctx context.Context, id int, input SuspendMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
}

type RecordResultInput struct {
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

type SuspendMatchInput struct {
	CulpritClubID *int    `json:"culprit_club_id"`
	Reason        *string `json:"reason"`
}

type matchService struct {
	matchRepo repositories.MatchRepository
	hub       *fixture.Hub
}

func NewMatchService(matchRepo repositories.MatchRepository, hub *fixture.Hub) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		hub:       hub,
	}
}

func (s *matchService) ListMatches(ctx context.Context, filter repositories.MatchListFilter) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchesListFailed, err)
	}
	return matches, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

// RecordResult finishes a match with a final score. The repository
// clears any suspension metadata in the same update, keeping the
// finished and suspended states mutually exclusive.
func (s *matchService) RecordResult(ctx context.Context, id int, input RecordResultInput) (*models.Match, error) {
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, ErrMatchScoreNegative
	}

	if err := s.matchRepo.UpdateResult(ctx, id, input.HomeGoals, input.AwayGoals); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to record result for match %d: %w", id, err)
	}
	return s.broadcastUpdated(ctx, id)
}

// SuspendMatch marks a match administratively terminated. With a
// culprit club set the match counts as a forfeit in the standings; with
// no culprit it is parked until adjudicated.
func (s *matchService) SuspendMatch(ctx context.Context, id int, input SuspendMatchInput) (*models.Match, error) {
	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CulpritClubID != nil {
		culprit := *input.CulpritClubID
		if culprit != match.HomeClubID && culprit != match.AwayClubID {
			return nil, ErrCulpritNotInMatch
		}
	}

	if err := s.matchRepo.UpdateSuspension(ctx, id, input.CulpritClubID, input.Reason); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to suspend match %d: %w", id, err)
	}
	return s.broadcastUpdated(ctx, id)
}

// DeleteMatch removes a single match, typically to correct a bad
// fixture commit before results come in.
func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) broadcastUpdated(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastToDivision(match.Division, fixture.EventMatchUpdated, match)
	}
	return match, nil
}

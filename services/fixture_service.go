package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ligaregional/league-system/fixture"
	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/repositories"
	"github.com/ligaregional/league-system/storage"
)

var (
	ErrFixtureInvalidStartDate = errors.New("invalid start date, expected YYYY-MM-DD")
	ErrFixtureCommitFailed     = errors.New("failed to commit fixture")
)

type FixtureService interface {
	PreviewFixture(ctx context.Context, input PreviewFixtureInput) ([]fixture.Round, error)
	CommitFixture(ctx context.Context, input CommitFixtureInput) (int, error)
}

type PreviewFixtureInput struct {
	ClubIDs      []int             `json:"club_ids"`
	StartDate    string            `json:"start_date"`
	KickoffTimes map[string]string `json:"kickoff_times"`
}

type CommitFixtureInput struct {
	Division models.Division `json:"division"`
	Rounds   []fixture.Round `json:"rounds"`
}

type fixtureService struct {
	db        *sql.DB
	clubRepo  repositories.ClubRepository
	matchRepo repositories.MatchRepository
	generator fixture.FixtureGenerator
	uploader  storage.FileUploader
	hub       *fixture.Hub
	logger    *slog.Logger
}

func NewFixtureService(
	db *sql.DB,
	clubRepo repositories.ClubRepository,
	matchRepo repositories.MatchRepository,
	generator fixture.FixtureGenerator,
	uploader storage.FileUploader,
	hub *fixture.Hub,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		db:        db,
		clubRepo:  clubRepo,
		matchRepo: matchRepo,
		generator: generator,
		uploader:  uploader,
		hub:       hub,
		logger:    logger,
	}
}

// PreviewFixture resolves the club ids, parses the schedule inputs and
// runs the generator. Nothing is persisted: the caller reviews the
// rounds and commits them separately.
func (s *fixtureService) PreviewFixture(ctx context.Context, input PreviewFixtureInput) ([]fixture.Round, error) {
	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFixtureInvalidStartDate, input.StartDate)
	}

	kickoffs := make(models.KickoffSchedule, len(input.KickoffTimes))
	for rawSeries, rawTime := range input.KickoffTimes {
		series, parseErr := models.ParseSeries(rawSeries)
		if parseErr != nil {
			return nil, parseErr
		}
		timeOfDay, parseErr := models.ParseTimeOfDay(rawTime)
		if parseErr != nil {
			return nil, fmt.Errorf("kickoff time for series %s: %w", series, parseErr)
		}
		kickoffs[series] = timeOfDay
	}
	if len(kickoffs) == 0 {
		return nil, ErrFixtureNoKickoffTimes
	}

	clubs, err := s.clubRepo.ListByIDs(ctx, input.ClubIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fixture clubs: %w", err)
	}
	if len(clubs) < 2 {
		return nil, ErrFixtureNeedsTwoClubs
	}
	division := clubs[0].Division
	for _, club := range clubs[1:] {
		if club.Division != division {
			return nil, ErrFixtureMixedDivisions
		}
	}
	populateClubListCrestURLs(clubs, s.uploader)

	rounds, err := s.generator.GenerateFixture(ctx, fixture.GenerateFixtureParams{
		Clubs:     clubs,
		StartDate: startDate,
		Kickoffs:  kickoffs,
	})
	if err != nil {
		return nil, fmt.Errorf("fixture generation failed: %w", err)
	}

	s.logger.Info("fixture preview generated",
		slog.String("generator", s.generator.GetName()),
		slog.String("division", string(division)),
		slog.Int("clubs", len(clubs)),
		slog.Int("rounds", len(rounds)),
	)
	return rounds, nil
}

// CommitFixture flattens every sub-match of the confirmed rounds into a
// scheduled match row and inserts them in one transaction. Returns the
// number of matches created.
func (s *fixtureService) CommitFixture(ctx context.Context, input CommitFixtureInput) (int, error) {
	division, err := models.ParseDivision(string(input.Division))
	if err != nil {
		return 0, err
	}

	matches := flattenRounds(input.Rounds, division)
	if len(matches) == 0 {
		return 0, ErrFixtureEmpty
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin transaction: %w", ErrFixtureCommitFailed, err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("fixture commit rollback failed", slog.Any("error", rbErr))
			}
		}
	}()

	if txErr = s.matchRepo.CreateBatch(ctx, tx, matches); txErr != nil {
		return 0, fmt.Errorf("%w: %w", ErrFixtureCommitFailed, txErr)
	}
	if txErr = tx.Commit(); txErr != nil {
		return 0, fmt.Errorf("%w: commit: %w", ErrFixtureCommitFailed, txErr)
	}

	s.logger.Info("fixture committed",
		slog.String("division", string(division)),
		slog.Int("rounds", len(input.Rounds)),
		slog.Int("matches", len(matches)),
	)
	if s.hub != nil {
		s.hub.BroadcastToDivision(division, fixture.EventFixtureCommitted, map[string]int{
			"rounds":  len(input.Rounds),
			"matches": len(matches),
		})
	}
	return len(matches), nil
}

// flattenRounds materializes preview sub-matches into insertable match
// rows. Pairings whose clubs went missing are skipped rather than
// committed half-formed.
func flattenRounds(rounds []fixture.Round, division models.Division) []*models.Match {
	matches := make([]*models.Match, 0)
	for _, round := range rounds {
		for _, pairing := range round.Pairings {
			if pairing.Home == nil || pairing.Away == nil {
				continue
			}
			for _, subMatch := range pairing.SubMatches {
				matches = append(matches, &models.Match{
					Round:      round.Number,
					HomeClubID: pairing.Home.ID,
					AwayClubID: pairing.Away.ID,
					Series:     subMatch.Series,
					Division:   division,
					Kickoff:    subMatch.Kickoff,
					Status:     models.MatchStatusScheduled,
				})
			}
		}
	}
	return matches
}

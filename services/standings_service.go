package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/repositories"
	"github.com/ligaregional/league-system/storage"
	"golang.org/x/sync/errgroup"
)

// Points for a win: Primera plays for 3, the other series for 2.
// A draw is always worth 1 point to each side.
func winPoints(series models.Series) int {
	if series == models.SeriesPrimera {
		return 3
	}
	return 2
}

// ComputeStandings folds finished and forfeited matches of one
// series+division into a sorted table. Matches are expected to be
// pre-filtered to that series and division; clubs are filtered here.
//
// A suspended match with a culprit club counts as a forfeit: the other
// side is awarded the win regardless of any partial score, and the
// goal-difference column is not touched in that branch. A suspended
// match without a culprit is not yet adjudicated and contributes
// nothing. Matches referencing a club outside the
// division roster are skipped.
//
// The fold is pure and runs from scratch on every call.
func ComputeStandings(matches []*models.Match, clubs []*models.Club, series models.Series, division models.Division) []*models.StandingRow {
	points := winPoints(series)

	rowsByClub := make(map[int]*models.StandingRow)
	rows := make([]*models.StandingRow, 0, len(clubs))
	for _, club := range clubs {
		if club.Division != division {
			continue
		}
		row := &models.StandingRow{
			ClubID:   club.ID,
			ClubName: club.Name,
			CrestURL: club.CrestURL,
		}
		rowsByClub[club.ID] = row
		rows = append(rows, row)
	}

	for _, match := range matches {
		home, okHome := rowsByClub[match.HomeClubID]
		away, okAway := rowsByClub[match.AwayClubID]
		if !okHome || !okAway {
			continue
		}

		homeGoals := derefInt(match.HomeGoals)
		awayGoals := derefInt(match.AwayGoals)

		switch {
		case match.CulpritClubID != nil:
			home.Played++
			away.Played++
			home.GoalsFor += homeGoals
			home.GoalsAgainst += awayGoals
			away.GoalsFor += awayGoals
			away.GoalsAgainst += homeGoals

			winner, loser := home, away
			if *match.CulpritClubID == match.HomeClubID {
				winner, loser = away, home
			}
			winner.Wins++
			winner.Points += points
			loser.Losses++

		case match.Status == models.MatchStatusFinished:
			home.Played++
			away.Played++
			home.GoalsFor += homeGoals
			home.GoalsAgainst += awayGoals
			away.GoalsFor += awayGoals
			away.GoalsAgainst += homeGoals
			home.GoalDifference = home.GoalsFor - home.GoalsAgainst
			away.GoalDifference = away.GoalsFor - away.GoalsAgainst

			switch {
			case homeGoals > awayGoals:
				home.Wins++
				home.Points += points
				away.Losses++
			case homeGoals < awayGoals:
				away.Wins++
				away.Points += points
				home.Losses++
			default:
				home.Draws++
				away.Draws++
				home.Points++
				away.Points++
			}
		}
	}

	// Points, then goal difference. There is no further tie-break rule;
	// the stable sort keeps the roster order deterministic on full ties.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].GoalDifference > rows[j].GoalDifference
	})

	return rows
}

type StandingsService interface {
	GetStandings(ctx context.Context, series models.Series, division models.Division) ([]*models.StandingRow, error)
}

type standingsService struct {
	clubRepo  repositories.ClubRepository
	matchRepo repositories.MatchRepository
	uploader  storage.FileUploader
}

func NewStandingsService(
	clubRepo repositories.ClubRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) StandingsService {
	return &standingsService{
		clubRepo:  clubRepo,
		matchRepo: matchRepo,
		uploader:  uploader,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, series models.Series, division models.Division) ([]*models.StandingRow, error) {
	var (
		clubs   []*models.Club
		matches []*models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clubs, err = s.clubRepo.ListByDivision(gctx, division)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gctx, repositories.MatchListFilter{
			Series:   &series,
			Division: &division,
			Statuses: []models.MatchStatus{models.MatchStatusFinished, models.MatchStatusSuspended},
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings inputs for %s/%s: %w", series, division, err)
	}

	populateClubListCrestURLs(clubs, s.uploader)

	return ComputeStandings(matches, clubs, series, division), nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligaregional/league-system/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchClubInvalid = errors.New("match club reference is invalid")
)

type MatchListFilter struct {
	Series   *models.Series
	Division *models.Division
	Statuses []models.MatchStatus
	Round    *int
}

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter MatchListFilter) ([]*models.Match, error)
	UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int) error
	UpdateSuspension(ctx context.Context, id int, culpritClubID *int, reason *string) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, round, home_club_id, away_club_id, series, division, kickoff, status,
	home_goals, away_goals, culprit_club_id, suspension_reason`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID,
		&match.Round,
		&match.HomeClubID,
		&match.AwayClubID,
		&match.Series,
		&match.Division,
		&match.Kickoff,
		&match.Status,
		&match.HomeGoals,
		&match.AwayGoals,
		&match.CulpritClubID,
		&match.SuspensionReason,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// CreateBatch inserts every match on the supplied executor, so a
// committed fixture lands atomically or not at all.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	query := `
		INSERT INTO matches (round, home_club_id, away_club_id, series, division, kickoff, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	for _, match := range matches {
		err := exec.QueryRowContext(ctx, query,
			match.Round,
			match.HomeClubID,
			match.AwayClubID,
			match.Series,
			match.Division,
			match.Kickoff,
			match.Status,
		).Scan(&match.ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return ErrMatchClubInvalid
			}
			return err
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchListFilter) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE ($1::text IS NULL OR series = $1)
		  AND ($2::text IS NULL OR division = $2)
		  AND ($3::text[] IS NULL OR status = ANY($3))
		  AND ($4::int IS NULL OR round = $4)
		ORDER BY round ASC, kickoff ASC, id ASC`

	var statuses interface{}
	if len(filter.Statuses) > 0 {
		values := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			values[i] = string(s)
		}
		statuses = pq.Array(values)
	}

	rows, err := r.db.QueryContext(ctx, query, filter.Series, filter.Division, statuses, filter.Round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// UpdateResult marks a match finished. Any suspension metadata from an
// earlier adjudication is cleared in the same statement: a finished
// match and a suspended match are mutually exclusive states.
func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int) error {
	query := `
		UPDATE matches
		SET status = $1, home_goals = $2, away_goals = $3,
		    culprit_club_id = NULL, suspension_reason = NULL
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, models.MatchStatusFinished, homeGoals, awayGoals, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSuspension(ctx context.Context, id int, culpritClubID *int, reason *string) error {
	query := `
		UPDATE matches
		SET status = $1, culprit_club_id = $2, suspension_reason = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, models.MatchStatusSuspended, culpritClubID, reason, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchClubInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligaregional/league-system/models"
)

var (
	ErrClubNotFound     = errors.New("club not found")
	ErrClubNameConflict = errors.New("club name conflict")
	ErrClubInUse        = errors.New("club cannot be deleted as it is referenced by matches or players")
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int) (*models.Club, error)
	ListByIDs(ctx context.Context, ids []int) ([]*models.Club, error)
	ListByDivision(ctx context.Context, division models.Division) ([]*models.Club, error)
	ListAll(ctx context.Context) ([]*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	UpdateCrestKey(ctx context.Context, id int, crestKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

const clubColumns = `id, name, division, primera, segunda, super_senior, crest_key, created_at`

func scanClub(row interface{ Scan(...interface{}) error }) (*models.Club, error) {
	var club models.Club
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.Division,
		&club.Primera,
		&club.Segunda,
		&club.SuperSenior,
		&club.CrestKey,
		&club.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *postgresClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (name, division, primera, segunda, super_senior)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		club.Name,
		club.Division,
		club.Primera,
		club.Segunda,
		club.SuperSenior,
	).Scan(&club.ID, &club.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "clubs_name_key" {
				return ErrClubNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`

	club, err := scanClub(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

// ListByIDs returns the clubs for the given ids, in the order the ids
// were supplied. Unknown ids are simply absent from the result.
func (r *postgresClubRepository) ListByIDs(ctx context.Context, ids []int) ([]*models.Club, error) {
	if len(ids) == 0 {
		return []*models.Club{}, nil
	}

	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int]*models.Club, len(ids))
	for rows.Next() {
		club, scanErr := scanClub(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		byID[club.ID] = club
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	clubs := make([]*models.Club, 0, len(ids))
	for _, id := range ids {
		if club, ok := byID[id]; ok {
			clubs = append(clubs, club)
		}
	}
	return clubs, nil
}

func (r *postgresClubRepository) ListByDivision(ctx context.Context, division models.Division) ([]*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE division = $1 ORDER BY name ASC`
	return r.list(ctx, query, division)
}

func (r *postgresClubRepository) ListAll(ctx context.Context) ([]*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs ORDER BY division ASC, name ASC`
	return r.list(ctx, query)
}

func (r *postgresClubRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Club, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0)
	for rows.Next() {
		club, scanErr := scanClub(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		clubs = append(clubs, club)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *postgresClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs
		SET name = $1, division = $2, primera = $3, segunda = $4, super_senior = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		club.Name,
		club.Division,
		club.Primera,
		club.Segunda,
		club.SuperSenior,
		club.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "clubs_name_key" {
				return ErrClubNameConflict
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	query := `UPDATE clubs SET crest_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, crestKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM clubs WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrClubInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

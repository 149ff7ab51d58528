package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligaregional/league-system/models"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerClubInvalid = errors.New("player club reference is invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByClub(ctx context.Context, clubID int) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdateClub(ctx context.Context, exec SQLExecutor, playerID int, clubID int) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, first_name, last_name, birth_date, club_id, photo_key, created_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var player models.Player
	err := row.Scan(
		&player.ID,
		&player.FirstName,
		&player.LastName,
		&player.BirthDate,
		&player.ClubID,
		&player.PhotoKey,
		&player.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (first_name, last_name, birth_date, club_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.FirstName,
		player.LastName,
		player.BirthDate,
		player.ClubID,
	).Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPlayerClubInvalid
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByClub(ctx context.Context, clubID int) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE club_id = $1 ORDER BY last_name ASC, first_name ASC`

	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET first_name = $1, last_name = $2, birth_date = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		player.FirstName,
		player.LastName,
		player.BirthDate,
		player.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// UpdateClub moves a player to another club. It runs on the supplied
// executor so the transfer service can pair it with the transfer-record
// insert inside one transaction.
func (r *postgresPlayerRepository) UpdateClub(ctx context.Context, exec SQLExecutor, playerID int, clubID int) error {
	query := `UPDATE players SET club_id = $1 WHERE id = $2`

	result, err := exec.ExecContext(ctx, query, clubID, playerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPlayerClubInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	query := `UPDATE players SET photo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, photoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligaregional/league-system/models"
)

var ErrTransferReferenceInvalid = errors.New("transfer references an unknown player or club")

type TransferRepository interface {
	Create(ctx context.Context, exec SQLExecutor, transfer *models.Transfer) error
	ListByPlayer(ctx context.Context, playerID int) ([]*models.Transfer, error)
}

type postgresTransferRepository struct {
	db *sql.DB
}

func NewPostgresTransferRepository(db *sql.DB) TransferRepository {
	return &postgresTransferRepository{db: db}
}

func (r *postgresTransferRepository) Create(ctx context.Context, exec SQLExecutor, transfer *models.Transfer) error {
	query := `
		INSERT INTO transfers (player_id, from_club_id, to_club_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		transfer.PlayerID,
		transfer.FromClubID,
		transfer.ToClubID,
	).Scan(&transfer.ID, &transfer.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTransferReferenceInvalid
		}
		return err
	}
	return nil
}

func (r *postgresTransferRepository) ListByPlayer(ctx context.Context, playerID int) ([]*models.Transfer, error) {
	query := `
		SELECT id, player_id, from_club_id, to_club_id, created_at
		FROM transfers
		WHERE player_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := make([]*models.Transfer, 0)
	for rows.Next() {
		var transfer models.Transfer
		if scanErr := rows.Scan(
			&transfer.ID,
			&transfer.PlayerID,
			&transfer.FromClubID,
			&transfer.ToClubID,
			&transfer.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		transfers = append(transfers, &transfer)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

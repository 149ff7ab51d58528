package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/repositories"
)

var ErrTransferFailed = errors.New("failed to transfer player")

type TransferService interface {
	TransferPlayer(ctx context.Context, input TransferInput) (*models.Transfer, error)
	ListTransfersByPlayer(ctx context.Context, playerID int) ([]*models.Transfer, error)
}

type TransferInput struct {
	PlayerID int `json:"player_id"`
	ToClubID int `json:"to_club_id"`
}

type transferService struct {
	db           *sql.DB
	transferRepo repositories.TransferRepository
	playerRepo   repositories.PlayerRepository
	clubRepo     repositories.ClubRepository
	logger       *slog.Logger
}

func NewTransferService(
	db *sql.DB,
	transferRepo repositories.TransferRepository,
	playerRepo repositories.PlayerRepository,
	clubRepo repositories.ClubRepository,
	logger *slog.Logger,
) TransferService {
	return &transferService{
		db:           db,
		transferRepo: transferRepo,
		playerRepo:   playerRepo,
		clubRepo:     clubRepo,
		logger:       logger,
	}
}

// TransferPlayer records the move and flips the player's club in a
// single transaction, so the history and the roster can never disagree.
func (s *transferService) TransferPlayer(ctx context.Context, input TransferInput) (*models.Transfer, error) {
	player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if player.ClubID != nil && *player.ClubID == input.ToClubID {
		return nil, ErrTransferSameClub
	}
	if _, err := s.clubRepo.GetByID(ctx, input.ToClubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrTransferFailed, err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("transfer rollback failed", slog.Any("error", rbErr))
			}
		}
	}()

	transfer := &models.Transfer{
		PlayerID:   player.ID,
		FromClubID: player.ClubID,
		ToClubID:   input.ToClubID,
	}
	if txErr = s.transferRepo.Create(ctx, tx, transfer); txErr != nil {
		if errors.Is(txErr, repositories.ErrTransferReferenceInvalid) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, txErr)
	}
	if txErr = s.playerRepo.UpdateClub(ctx, tx, player.ID, input.ToClubID); txErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, txErr)
	}
	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("%w: commit: %w", ErrTransferFailed, txErr)
	}

	s.logger.Info("player transferred",
		slog.Int("player_id", player.ID),
		slog.Any("from_club_id", player.ClubID),
		slog.Int("to_club_id", input.ToClubID),
	)
	return transfer, nil
}

func (s *transferService) ListTransfersByPlayer(ctx context.Context, playerID int) ([]*models.Transfer, error) {
	transfers, err := s.transferRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers for player %d: %w", playerID, err)
	}
	return transfers, nil
}

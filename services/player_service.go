package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/repositories"
	"github.com/ligaregional/league-system/storage"
)

var (
	ErrPlayerCreationFailed   = errors.New("failed to create player")
	ErrPlayerUpdateFailed     = errors.New("failed to update player")
	ErrPlayerDeleteFailed     = errors.New("failed to delete player")
	ErrPlayerPhotoFailed      = errors.New("failed to upload player photo")
	ErrPlayerBirthDateInvalid = errors.New("invalid birth date, expected YYYY-MM-DD")
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayersByClub(ctx context.Context, clubID int) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, file io.Reader, contentType string) (*models.Player, error)
}

type PlayerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	ClubID    *int   `json:"club_id"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	clubRepo   repositories.ClubRepository
	uploader   storage.FileUploader
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	clubRepo repositories.ClubRepository,
	uploader storage.FileUploader,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		clubRepo:   clubRepo,
		uploader:   uploader,
	}
}

func parsePlayerInput(input PlayerInput) (*models.Player, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrPlayerNameRequired
	}
	birthDate, err := time.Parse("2006-01-02", input.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPlayerBirthDateInvalid, input.BirthDate)
	}
	return &models.Player{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: birthDate,
		ClubID:    input.ClubID,
	}, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	player, err := parsePlayerInput(input)
	if err != nil {
		return nil, err
	}
	if player.ClubID != nil {
		if _, err := s.clubRepo.GetByID(ctx, *player.ClubID); err != nil {
			if errors.Is(err, repositories.ErrClubNotFound) {
				return nil, ErrClubNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrPlayerCreationFailed, err)
		}
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerClubInvalid) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPlayerCreationFailed, err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) ListPlayersByClub(ctx context.Context, clubID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for club %d: %w", clubID, err)
	}
	for _, player := range players {
		populatePlayerPhotoURL(player, s.uploader)
	}
	return players, nil
}

// UpdatePlayer changes a player's personal data. Club membership is not
// touched here: moving a player between clubs goes through the transfer
// service so the move is recorded.
func (s *playerService) UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	player, err := parsePlayerInput(input)
	if err != nil {
		return nil, err
	}
	player.ID = id
	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrPlayerUpdateFailed, id, err)
	}
	return s.GetPlayerByID(ctx, id)
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrPlayerDeleteFailed, id, err)
	}
	return nil
}

func (s *playerService) UploadPhoto(ctx context.Context, id int, file io.Reader, contentType string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrPlayerPhotoFailed, id, err)
	}

	key := fmt.Sprintf("players/%d/photo", id)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("%w (id: %d): %w", ErrPlayerPhotoFailed, id, err)
	}
	if err := s.playerRepo.UpdatePhotoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("%w (id: %d): %w", ErrPlayerPhotoFailed, id, err)
	}

	player.PhotoKey = &key
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

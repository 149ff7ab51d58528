package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/repositories"
	"github.com/ligaregional/league-system/storage"
)

var (
	ErrClubCreationFailed = errors.New("failed to create club")
	ErrClubUpdateFailed   = errors.New("failed to update club")
	ErrClubDeleteFailed   = errors.New("failed to delete club")
	ErrCrestUploadFailed  = errors.New("failed to upload club crest")
)

type ClubService interface {
	CreateClub(ctx context.Context, input ClubInput) (*models.Club, error)
	GetClubByID(ctx context.Context, id int) (*models.Club, error)
	ListClubs(ctx context.Context, division *models.Division) ([]*models.Club, error)
	UpdateClub(ctx context.Context, id int, input ClubInput) (*models.Club, error)
	DeleteClub(ctx context.Context, id int) error
	UploadCrest(ctx context.Context, id int, file io.Reader, contentType string) (*models.Club, error)
}

type ClubInput struct {
	Name        string          `json:"name"`
	Division    models.Division `json:"division"`
	Primera     bool            `json:"primera"`
	Segunda     bool            `json:"segunda"`
	SuperSenior bool            `json:"super_senior"`
}

type clubService struct {
	clubRepo repositories.ClubRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewClubService(clubRepo repositories.ClubRepository, uploader storage.FileUploader, logger *slog.Logger) ClubService {
	return &clubService{
		clubRepo: clubRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *clubService) CreateClub(ctx context.Context, input ClubInput) (*models.Club, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClubNameRequired
	}
	division, err := models.ParseDivision(string(input.Division))
	if err != nil {
		return nil, err
	}

	club := &models.Club{
		Name:        name,
		Division:    division,
		Primera:     input.Primera,
		Segunda:     input.Segunda,
		SuperSenior: input.SuperSenior,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNameConflict) {
			return nil, ErrClubNameConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrClubCreationFailed, err)
	}
	return club, nil
}

func (s *clubService) GetClubByID(ctx context.Context, id int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %d: %w", id, err)
	}
	populateClubCrestURL(club, s.uploader)
	return club, nil
}

func (s *clubService) ListClubs(ctx context.Context, division *models.Division) ([]*models.Club, error) {
	var (
		clubs []*models.Club
		err   error
	)
	if division != nil {
		clubs, err = s.clubRepo.ListByDivision(ctx, *division)
	} else {
		clubs, err = s.clubRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	populateClubListCrestURLs(clubs, s.uploader)
	return clubs, nil
}

func (s *clubService) UpdateClub(ctx context.Context, id int, input ClubInput) (*models.Club, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClubNameRequired
	}
	division, err := models.ParseDivision(string(input.Division))
	if err != nil {
		return nil, err
	}

	club := &models.Club{
		ID:          id,
		Name:        name,
		Division:    division,
		Primera:     input.Primera,
		Segunda:     input.Segunda,
		SuperSenior: input.SuperSenior,
	}
	if err := s.clubRepo.Update(ctx, club); err != nil {
		switch {
		case errors.Is(err, repositories.ErrClubNotFound):
			return nil, ErrClubNotFound
		case errors.Is(err, repositories.ErrClubNameConflict):
			return nil, ErrClubNameConflict
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrClubUpdateFailed, id, err)
		}
	}
	return s.GetClubByID(ctx, id)
}

func (s *clubService) DeleteClub(ctx context.Context, id int) error {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return ErrClubNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrClubDeleteFailed, id, err)
	}

	if err := s.clubRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrClubNotFound):
			return ErrClubNotFound
		case errors.Is(err, repositories.ErrClubInUse):
			return ErrClubInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrClubDeleteFailed, id, err)
		}
	}

	if club.CrestKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *club.CrestKey); err != nil {
			// The row is gone; a stranded object is only worth a warning.
			s.logger.Warn("failed to delete club crest from storage",
				slog.Int("club_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *clubService) UploadCrest(ctx context.Context, id int, file io.Reader, contentType string) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrCrestUploadFailed, id, err)
	}

	key := fmt.Sprintf("clubs/%d/crest", id)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("%w (id: %d): %w", ErrCrestUploadFailed, id, err)
	}
	if err := s.clubRepo.UpdateCrestKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("%w (id: %d): %w", ErrCrestUploadFailed, id, err)
	}

	club.CrestKey = &key
	populateClubCrestURL(club, s.uploader)
	return club, nil
}

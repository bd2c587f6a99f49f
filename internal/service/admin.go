package service

import (
	"context"

	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/repository"
	"github.com/rs/zerolog"
)

type AdminService struct {
	repo *repository.Repository
	log  zerolog.Logger
}

func NewAdminService(repo *repository.Repository, log zerolog.Logger) *AdminService {
	return &AdminService{
		repo: repo,
		log:  log.With().Str("component", "admin").Logger(),
	}
}

func (s *AdminService) ListUsers(ctx context.Context, page, size int) ([]domain.User, int, error) {
	return s.repo.ListUsers(ctx, page, size)
}

func (s *AdminService) SetUserEnabled(ctx context.Context, userID int64, enabled bool) error {
	if err := s.repo.SetUserEnabled(ctx, userID, enabled); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", userID).Bool("enabled", enabled).Msg("user enabled flag changed")
	return nil
}

type PlatformStats struct {
	Users        int `json:"users"`
	Properties   int `json:"properties"`
	Orders       int `json:"orders"`
	Interactions int `json:"interactions"`
}

func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	var err error
	if stats.Users, err = s.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.Properties, err = s.repo.CountProperties(ctx); err != nil {
		return nil, err
	}
	if stats.Orders, err = s.repo.CountOrders(ctx); err != nil {
		return nil, err
	}
	if stats.Interactions, err = s.repo.CountInteractions(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/lodgewise/homestay-backend/internal/cache"
	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/engine"
	"github.com/lodgewise/homestay-backend/internal/repository"
	"github.com/rs/zerolog"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Cache key segments per algorithm.
const (
	algorithmHybrid        = "hybrid"
	algorithmCollaborative = "collaborative"
	algorithmContentBased  = "content"
)

type RecommendationResult struct {
	Properties []domain.Property
	CacheHit   bool
}

// RecommendationService wraps the pure engine with limit policy and the
// redis cache. Cache errors degrade to recomputation, never to failure.
type RecommendationService struct {
	repo   *repository.Repository
	engine *engine.Engine
	cache  *cache.Cache
	log    zerolog.Logger
}

func NewRecommendationService(repo *repository.Repository, eng *engine.Engine, c *cache.Cache, log zerolog.Logger) *RecommendationService {
	return &RecommendationService{
		repo:   repo,
		engine: eng,
		cache:  c,
		log:    log.With().Str("component", "recommendations").Logger(),
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (s *RecommendationService) Hybrid(ctx context.Context, userID int64, limit int) (*RecommendationResult, error) {
	return s.get(ctx, userID, limit, algorithmHybrid, s.engine.Recommendations)
}

func (s *RecommendationService) Collaborative(ctx context.Context, userID int64, limit int) (*RecommendationResult, error) {
	return s.get(ctx, userID, limit, algorithmCollaborative, s.engine.CollaborativeRecommendations)
}

func (s *RecommendationService) ContentBased(ctx context.Context, userID int64, limit int) (*RecommendationResult, error) {
	return s.get(ctx, userID, limit, algorithmContentBased, s.engine.ContentBasedRecommendations)
}

func (s *RecommendationService) get(ctx context.Context, userID int64, limit int, algorithm string,
	compute func(context.Context, int64, int) ([]domain.Property, error)) (*RecommendationResult, error) {

	limit = clampLimit(limit)

	cached, found, err := s.cache.Get(ctx, userID, algorithm, limit)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache get failed")
	}
	if found {
		return &RecommendationResult{Properties: cached, CacheHit: true}, nil
	}

	props, err := compute(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, algorithm, limit, props); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache set failed")
	}
	return &RecommendationResult{Properties: props, CacheHit: false}, nil
}

// RecordInteraction appends one behavioural event and invalidates the
// user's cached recommendations, since any new event can change them.
func (s *RecommendationService) RecordInteraction(ctx context.Context, userID, propertyID int64, kind domain.InteractionKind, rating *int) (*domain.Interaction, error) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	if _, err := s.repo.PropertyByID(ctx, propertyID); err != nil {
		return nil, err
	}

	it := &domain.Interaction{
		UserID:     userID,
		PropertyID: propertyID,
		Kind:       kind,
		Rating:     rating,
	}
	if err := s.repo.CreateInteraction(ctx, it); err != nil {
		return nil, fmt.Errorf("record interaction: %w", err)
	}

	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation failed")
	}
	return it, nil
}

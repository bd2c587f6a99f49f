// Package engine implements the hybrid property recommendation engine.
// It combines user-based collaborative filtering with content-based
// filtering over property attributes, falling back to popularity or
// rating rankings when a user has no usable history.
//
// The engine is stateless: every call reads a fresh snapshot through its
// reader interfaces and computes the result from scratch, so concurrent
// calls need no locking and the output is safe to cache externally.
package engine

import (
	"context"
	"fmt"

	"github.com/lodgewise/homestay-backend/internal/domain"
)

const (
	// fallbackPoolSize is the fixed pool the cold-start rankings draw
	// from before truncating to the caller's limit.
	fallbackPoolSize = 10

	// Rank-decay fusion weights for the hybrid ranking.
	collaborativeWeight = 0.6
	contentWeight       = 0.4

	// Content-based scoring term weights.
	cityWeight    = 0.3
	typeWeight    = 0.2
	priceWeight   = 0.25
	bedroomWeight = 0.15
	ratingWeight  = 0.10
)

// PropertyReader is the property store surface the engine needs.
type PropertyReader interface {
	PropertyByID(ctx context.Context, id int64) (*domain.Property, error)
	AvailableProperties(ctx context.Context) ([]domain.Property, error)
	TopByBookingCount(ctx context.Context, limit int) ([]domain.Property, error)
	TopByRating(ctx context.Context, limit int) ([]domain.Property, error)
}

// InteractionReader reads the append-only interaction log.
type InteractionReader interface {
	InteractionsByUser(ctx context.Context, userID int64) ([]domain.Interaction, error)
	AllInteractions(ctx context.Context) ([]domain.Interaction, error)
}

// UserReader checks user existence.
type UserReader interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type Engine struct {
	properties   PropertyReader
	interactions InteractionReader
	users        UserReader
}

func New(properties PropertyReader, interactions InteractionReader, users UserReader) *Engine {
	return &Engine{
		properties:   properties,
		interactions: interactions,
		users:        users,
	}
}

// Recommendations fuses the collaborative and content-based rankings
// into the final list. Both sub-rankings are over-fetched at twice the
// limit, then each entry contributes a linearly decaying score weighted
// 60/40 in favor of the collaborative signal. A property appearing in
// both lists accumulates both contributions.
func (e *Engine) Recommendations(ctx context.Context, userID int64, limit int) ([]domain.Property, error) {
	if err := e.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	collab, err := e.collaborative(ctx, userID, 2*limit)
	if err != nil {
		return nil, fmt.Errorf("collaborative ranking: %w", err)
	}
	content, err := e.contentBased(ctx, userID, 2*limit)
	if err != nil {
		return nil, fmt.Errorf("content-based ranking: %w", err)
	}

	return e.resolveRanked(ctx, rankScores(fuseRankings(collab, content)), limit, false)
}

// CollaborativeRecommendations exposes the collaborative ranking alone.
func (e *Engine) CollaborativeRecommendations(ctx context.Context, userID int64, limit int) ([]domain.Property, error) {
	if err := e.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	return e.collaborative(ctx, userID, limit)
}

// ContentBasedRecommendations exposes the content-based ranking alone.
func (e *Engine) ContentBasedRecommendations(ctx context.Context, userID int64, limit int) ([]domain.Property, error) {
	if err := e.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	return e.contentBased(ctx, userID, limit)
}

// fuseRankings merges two ranked lists by rank decay: an entry at
// 0-based position i of a list with n entries contributes (n-i) times
// the list's weight, and contributions for the same property add up.
// Fusing ranks rather than raw scores sidesteps the incomparable score
// scales of the two algorithms.
func fuseRankings(collab, content []domain.Property) map[int64]float64 {
	scores := make(map[int64]float64, len(collab)+len(content))
	for i, p := range collab {
		scores[p.ID] += float64(len(collab)-i) * collaborativeWeight
	}
	for i, p := range content {
		scores[p.ID] += float64(len(content)-i) * contentWeight
	}
	return scores
}

func (e *Engine) checkUser(ctx context.Context, userID int64) error {
	ok, err := e.users.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

// userPropertyIndex builds the global user -> distinct interacted
// property id set index from the full interaction log.
func (e *Engine) userPropertyIndex(ctx context.Context) (map[int64]map[int64]struct{}, error) {
	all, err := e.interactions.AllInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	index := make(map[int64]map[int64]struct{})
	for _, it := range all {
		set, ok := index[it.UserID]
		if !ok {
			set = make(map[int64]struct{})
			index[it.UserID] = set
		}
		set[it.PropertyID] = struct{}{}
	}
	return index, nil
}

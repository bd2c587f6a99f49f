package engine

import (
	"context"
	"fmt"

	"github.com/lodgewise/homestay-backend/internal/domain"
)

// popularFallback is the cold-start ranking for the collaborative path:
// the top available properties by booking count, truncated to limit.
func (e *Engine) popularFallback(ctx context.Context, limit int) ([]domain.Property, error) {
	pool, err := e.properties.TopByBookingCount(ctx, fallbackPoolSize)
	if err != nil {
		return nil, fmt.Errorf("load popular properties: %w", err)
	}
	return truncate(pool, limit), nil
}

// ratingFallback is the cold-start ranking for the content-based path:
// the top available properties by rating, truncated to limit.
func (e *Engine) ratingFallback(ctx context.Context, limit int) ([]domain.Property, error) {
	pool, err := e.properties.TopByRating(ctx, fallbackPoolSize)
	if err != nil {
		return nil, fmt.Errorf("load top rated properties: %w", err)
	}
	return truncate(pool, limit), nil
}

func truncate(props []domain.Property, limit int) []domain.Property {
	if limit < len(props) {
		return props[:limit]
	}
	return props
}

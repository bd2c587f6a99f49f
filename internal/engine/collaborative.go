package engine

import (
	"context"
	"fmt"

	"github.com/lodgewise/homestay-backend/internal/domain"
)

// collaborative ranks properties that users with overlapping interaction
// histories engaged with. User similarity is Jaccard over interacted
// property sets; each similar user's similarity is added to every
// property of theirs the current user has not touched. Users with no
// history get the popularity fallback.
func (e *Engine) collaborative(ctx context.Context, userID int64, limit int) ([]domain.Property, error) {
	own, err := e.interactions.InteractionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions for user %d: %w", userID, err)
	}
	if len(own) == 0 {
		return e.popularFallback(ctx, limit)
	}

	index, err := e.userPropertyIndex(ctx)
	if err != nil {
		return nil, err
	}
	mine, ok := index[userID]
	if !ok {
		return e.popularFallback(ctx, limit)
	}

	scores := make(map[int64]float64)
	for otherID, theirs := range index {
		if otherID == userID {
			continue
		}
		similarity := jaccard(mine, theirs)
		if similarity <= 0 {
			continue
		}
		for propertyID := range theirs {
			if _, interacted := mine[propertyID]; interacted {
				continue
			}
			scores[propertyID] += similarity
		}
	}

	return e.resolveRanked(ctx, rankScores(scores), limit, true)
}

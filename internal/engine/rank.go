package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/lodgewise/homestay-backend/internal/domain"
)

type scoredCandidate struct {
	id    int64
	score float64
}

// rankScores orders candidates by score descending. Ties break on
// property id ascending so equal scores always rank the same way.
func rankScores(scores map[int64]float64) []scoredCandidate {
	ranked := make([]scoredCandidate, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, scoredCandidate{id: id, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})
	return ranked
}

// resolveRanked resolves ranked candidate ids to property records, up to
// limit. A candidate that no longer resolves (deleted since scoring)
// still consumes its slot, so the result may come up short; the engine
// never backfills past the limit. With availableOnly set, unavailable
// properties are filtered out without consuming a slot.
func (e *Engine) resolveRanked(ctx context.Context, ranked []scoredCandidate, limit int, availableOnly bool) ([]domain.Property, error) {
	resolved := make([]domain.Property, 0, limit)
	taken := 0
	for _, c := range ranked {
		if taken >= limit {
			break
		}
		p, err := e.properties.PropertyByID(ctx, c.id)
		if errors.Is(err, domain.ErrPropertyNotFound) {
			taken++
			continue
		}
		if err != nil {
			return nil, err
		}
		if availableOnly && !p.Available {
			continue
		}
		resolved = append(resolved, *p)
		taken++
	}
	return resolved, nil
}

// jaccard is |a ∩ b| / |a ∪ b|, 0 when both sets are empty.
func jaccard(a, b map[int64]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

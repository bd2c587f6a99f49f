package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// preferenceProfile is derived fresh per request from the properties a
// user liked and is never persisted.
type preferenceProfile struct {
	cityFreq    map[string]int
	typeFreq    map[string]int
	avgPrice    float64
	avgBedrooms int
}

// contentBased ranks available, not-yet-interacted properties by
// attribute similarity to the user's liked properties. Users with no
// liked properties get the rating fallback.
func (e *Engine) contentBased(ctx context.Context, userID int64, limit int) ([]domain.Property, error) {
	own, err := e.interactions.InteractionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions for user %d: %w", userID, err)
	}
	if len(own) == 0 {
		return e.ratingFallback(ctx, limit)
	}

	interacted := make(map[int64]struct{}, len(own))
	liked := make([]domain.Property, 0, len(own))
	for _, it := range own {
		interacted[it.PropertyID] = struct{}{}
		if !it.Liked() {
			continue
		}
		p, err := e.properties.PropertyByID(ctx, it.PropertyID)
		if errors.Is(err, domain.ErrPropertyNotFound) {
			// Liked property deleted since; it cannot shape the profile.
			continue
		}
		if err != nil {
			return nil, err
		}
		liked = append(liked, *p)
	}
	if len(liked) == 0 {
		return e.ratingFallback(ctx, limit)
	}

	profile := buildProfile(liked)

	candidates, err := e.properties.AvailableProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("load available properties: %w", err)
	}

	scores := make(map[int64]float64, len(candidates))
	for _, p := range candidates {
		if _, seen := interacted[p.ID]; seen {
			continue
		}
		scores[p.ID] = profile.score(p)
	}

	return e.resolveRanked(ctx, rankScores(scores), limit, false)
}

func buildProfile(liked []domain.Property) preferenceProfile {
	profile := preferenceProfile{
		cityFreq: make(map[string]int),
		typeFreq: make(map[string]int),
	}

	priceSum := decimal.Zero
	bedroomSum := 0
	for _, p := range liked {
		profile.cityFreq[p.City]++
		if p.PropertyType != "" {
			profile.typeFreq[p.PropertyType]++
		}
		priceSum = priceSum.Add(p.Price)
		bedroomSum += p.Bedrooms
	}

	n := int64(len(liked))
	profile.avgPrice, _ = priceSum.Div(decimal.NewFromInt(n)).Float64()
	profile.avgBedrooms = bedroomSum / len(liked)
	return profile
}

// score is the weighted five-term attribute similarity. The city and
// type terms are raw frequency counts, not normalized, so they can
// outgrow the bounded terms for users with many likes; that matches the
// established ranking behaviour and changing it would reorder results.
func (profile preferenceProfile) score(p domain.Property) float64 {
	score := 0.0

	if freq, ok := profile.cityFreq[p.City]; ok {
		score += float64(freq) * cityWeight
	}
	if p.PropertyType != "" {
		if freq, ok := profile.typeFreq[p.PropertyType]; ok {
			score += float64(freq) * typeWeight
		}
	}

	// A non-positive mean price cannot anchor the ratio; drop the term.
	if profile.avgPrice > 0 {
		price, _ := p.Price.Float64()
		priceDiff := math.Abs(price - profile.avgPrice)
		score += priceWeight / (1 + priceDiff/profile.avgPrice)
	}

	bedroomDiff := p.Bedrooms - profile.avgBedrooms
	if bedroomDiff < 0 {
		bedroomDiff = -bedroomDiff
	}
	score += bedroomWeight / (1 + float64(bedroomDiff))

	rating, _ := p.Rating.Float64()
	score += rating / 5.0 * ratingWeight

	return score
}

package domain

import "time"

type InteractionKind string

const (
	InteractionView     InteractionKind = "VIEW"
	InteractionFavorite InteractionKind = "FAVORITE"
	InteractionBook     InteractionKind = "BOOK"
	InteractionReview   InteractionKind = "REVIEW"
)

// Interaction is one append-only behavioural event: a user viewed,
// favorited, booked, or reviewed a property. Rating is only meaningful
// for reviews and is optional.
type Interaction struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	PropertyID int64           `json:"property_id"`
	Kind       InteractionKind `json:"kind"`
	Rating     *int            `json:"rating,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RatingValue returns the interaction's rating if present and within
// the valid 1..5 range. Out-of-range values are treated as absent.
func (i Interaction) RatingValue() (int, bool) {
	if i.Rating == nil {
		return 0, false
	}
	r := *i.Rating
	if r < 1 || r > 5 {
		return 0, false
	}
	return r, true
}

// Liked reports whether the interaction counts as a positive signal:
// a favorite, a booking, or any interaction rated 4 or higher.
func (i Interaction) Liked() bool {
	switch i.Kind {
	case InteractionFavorite, InteractionBook:
		return true
	}
	r, ok := i.RatingValue()
	return ok && r >= 4
}

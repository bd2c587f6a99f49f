package engine

import (
	"context"
	"sort"
	"testing"

	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements all three reader interfaces over in-memory data.
type fakeStore struct {
	users        map[int64]bool
	properties   map[int64]domain.Property
	interactions []domain.Interaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[int64]bool),
		properties: make(map[int64]domain.Property),
	}
}

func (f *fakeStore) UserExists(_ context.Context, userID int64) (bool, error) {
	return f.users[userID], nil
}

func (f *fakeStore) PropertyByID(_ context.Context, id int64) (*domain.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return &p, nil
}

func (f *fakeStore) AvailableProperties(_ context.Context) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range f.properties {
		if p.Available {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) TopByBookingCount(ctx context.Context, limit int) ([]domain.Property, error) {
	out, _ := f.AvailableProperties(ctx)
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingCount != out[j].BookingCount {
			return out[i].BookingCount > out[j].BookingCount
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) TopByRating(ctx context.Context, limit int) ([]domain.Property, error) {
	out, _ := f.AvailableProperties(ctx)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Rating.Equal(out[j].Rating) {
			return out[i].Rating.GreaterThan(out[j].Rating)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) InteractionsByUser(_ context.Context, userID int64) ([]domain.Interaction, error) {
	var out []domain.Interaction
	for _, it := range f.interactions {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStore) AllInteractions(_ context.Context) ([]domain.Interaction, error) {
	return append([]domain.Interaction(nil), f.interactions...), nil
}

func (f *fakeStore) addUser(id int64) {
	f.users[id] = true
}

func (f *fakeStore) addProperty(id int64, city, propertyType, price string, bedrooms int, rating string, bookings int) {
	f.properties[id] = domain.Property{
		ID:           id,
		Title:        "listing",
		City:         city,
		PropertyType: propertyType,
		Price:        decimal.RequireFromString(price),
		Bedrooms:     bedrooms,
		Rating:       decimal.RequireFromString(rating),
		BookingCount: bookings,
		Available:    true,
	}
}

func (f *fakeStore) interact(userID, propertyID int64, kind domain.InteractionKind) {
	f.interactions = append(f.interactions, domain.Interaction{
		UserID:     userID,
		PropertyID: propertyID,
		Kind:       kind,
	})
}

func (f *fakeStore) rate(userID, propertyID int64, rating int) {
	f.interactions = append(f.interactions, domain.Interaction{
		UserID:     userID,
		PropertyID: propertyID,
		Kind:       domain.InteractionReview,
		Rating:     &rating,
	})
}

func ids(props []domain.Property) []int64 {
	out := make([]int64, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestUnknownUserAborts(t *testing.T) {
	store := newFakeStore()
	e := New(store, store, store)
	ctx := context.Background()

	_, err := e.Recommendations(ctx, 42, 10)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = e.CollaborativeRecommendations(ctx, 42, 10)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = e.ContentBasedRecommendations(ctx, 42, 10)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestColdStartFallbacks(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addProperty(1, "Lisbon", "apartment", "80", 1, "4.9", 3)
	store.addProperty(2, "Lisbon", "house", "120", 2, "3.1", 50)
	store.addProperty(3, "Porto", "villa", "200", 4, "4.5", 20)
	e := New(store, store, store)
	ctx := context.Background()

	collab, err := e.CollaborativeRecommendations(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids(collab), "booking-count order, truncated")

	content, err := e.ContentBasedRecommendations(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(content), "rating order, truncated")
}

func TestJaccard(t *testing.T) {
	set := func(members ...int64) map[int64]struct{} {
		s := make(map[int64]struct{})
		for _, m := range members {
			s[m] = struct{}{}
		}
		return s
	}

	a := set(1, 2, 3, 4)
	b := set(3, 4, 5, 6)
	assert.InDelta(t, 2.0/6.0, jaccard(a, b), 1e-9)
	assert.Equal(t, jaccard(a, b), jaccard(b, a), "symmetry")
	assert.Zero(t, jaccard(set(), set()))
	assert.Zero(t, jaccard(a, set(7, 8)))
	assert.Equal(t, 1.0, jaccard(a, a))
}

func TestCollaborativeRanking(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	for id := int64(1); id <= 8; id++ {
		store.addProperty(id, "Lisbon", "apartment", "100", 2, "4.0", 0)
	}
	// A = {1,2,3,4}, B = {3,4,5,6}: Jaccard 2/6. C = {7,8}: shares nothing.
	for _, p := range []int64{1, 2, 3, 4} {
		store.interact(1, p, domain.InteractionView)
	}
	for _, p := range []int64{3, 4, 5, 6} {
		store.interact(2, p, domain.InteractionView)
	}
	for _, p := range []int64{7, 8} {
		store.interact(3, p, domain.InteractionView)
	}
	e := New(store, store, store)

	got, err := e.CollaborativeRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	// Only B contributes: 5 and 6 at equal score, tie broken by id.
	// C's properties must not appear at all.
	assert.Equal(t, []int64{5, 6}, ids(got))
}

func TestCollaborativeExcludesOwnAndUnavailable(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addProperty(1, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(2, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(3, "Lisbon", "apartment", "100", 2, "4.0", 0)
	unavailable := store.properties[2]
	unavailable.Available = false
	store.properties[2] = unavailable

	store.interact(1, 1, domain.InteractionView)
	store.interact(2, 1, domain.InteractionView)
	store.interact(2, 2, domain.InteractionView)
	store.interact(2, 3, domain.InteractionView)
	e := New(store, store, store)

	got, err := e.CollaborativeRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(got), "own and unavailable properties excluded")
}

func TestDanglingReferenceShrinksResult(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addProperty(1, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(3, "Lisbon", "apartment", "100", 2, "4.0", 0)

	store.interact(1, 1, domain.InteractionView)
	store.interact(2, 1, domain.InteractionView)
	// Property 99 was deleted after user 2 interacted with it.
	store.interact(2, 99, domain.InteractionView)
	store.interact(2, 3, domain.InteractionView)
	e := New(store, store, store)

	got, err := e.CollaborativeRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(got), "dangling candidate dropped, not an error")
}

func TestContentBasedScenario(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	// Liked pair: avg price 100, avg bedrooms 2.
	store.addProperty(1, "Lisbon", "apartment", "90", 2, "4.5", 0)
	store.addProperty(2, "Lisbon", "apartment", "110", 2, "4.5", 0)
	// Candidate sharing city, type, near-average price, same bedrooms.
	store.addProperty(3, "Lisbon", "apartment", "104", 2, "4.0", 0)
	// Candidate in an unseen city at ten times the average price.
	store.addProperty(4, "Dubai", "villa", "1000", 6, "5.0", 0)

	store.interact(1, 1, domain.InteractionFavorite)
	store.interact(1, 2, domain.InteractionFavorite)
	e := New(store, store, store)

	got, err := e.ContentBasedRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 4}, ids(got), "close match must outrank far match")
}

func TestContentBasedExcludesInteracted(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addProperty(1, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(2, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(3, "Lisbon", "apartment", "100", 2, "4.0", 0)

	store.interact(1, 1, domain.InteractionFavorite)
	// A plain view is not a like, but it still excludes the property.
	store.interact(1, 2, domain.InteractionView)
	e := New(store, store, store)

	got, err := e.ContentBasedRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(got))
}

func TestContentBasedRatingGate(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addProperty(1, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(2, "Porto", "house", "300", 3, "2.0", 0)
	store.addProperty(3, "Lisbon", "apartment", "100", 2, "3.0", 0)
	store.addProperty(4, "Porto", "house", "310", 3, "5.0", 5)

	// Rating 6 is out of range, so property 2's review is not a like and
	// the profile is built from property 1 alone (rated 4).
	store.rate(1, 1, 4)
	store.rate(1, 2, 6)
	e := New(store, store, store)

	got, err := e.ContentBasedRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID, "profile shaped by the valid like only")
}

func TestFuseRankings(t *testing.T) {
	mk := func(ids ...int64) []domain.Property {
		out := make([]domain.Property, len(ids))
		for i, id := range ids {
			out[i] = domain.Property{ID: id}
		}
		return out
	}

	scores := fuseRankings(mk(10, 20, 30), mk(20, 40))
	assert.InDelta(t, 3*0.6, scores[10], 1e-9)
	assert.InDelta(t, 2*0.6+2*0.4, scores[20], 1e-9, "cross-listed property sums both contributions")
	assert.InDelta(t, 1*0.6, scores[30], 1e-9)
	assert.InDelta(t, 1*0.4, scores[40], 1e-9)

	assert.Empty(t, fuseRankings(nil, nil))
}

func TestRankScoresDeterministicTies(t *testing.T) {
	scores := map[int64]float64{5: 1.0, 3: 1.0, 9: 2.0, 7: 1.0}
	ranked := rankScores(scores)
	got := make([]int64, len(ranked))
	for i, c := range ranked {
		got[i] = c.id
	}
	assert.Equal(t, []int64{9, 3, 5, 7}, got)
}

func TestHybridPrefersCrossSignalAgreement(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	// P2 matches user 1's liked profile exactly and is also held by the
	// most similar user, so it must come out on top of the hybrid list.
	store.addProperty(1, "Lisbon", "apartment", "100", 2, "4.5", 0)
	store.addProperty(2, "Lisbon", "apartment", "100", 2, "4.5", 0)
	store.addProperty(3, "Porto", "house", "250", 3, "3.5", 0)
	store.addProperty(4, "Braga", "villa", "400", 5, "4.0", 0)

	store.interact(1, 1, domain.InteractionFavorite)
	store.interact(2, 1, domain.InteractionView)
	store.interact(2, 2, domain.InteractionView)
	store.interact(3, 1, domain.InteractionView)
	store.interact(3, 4, domain.InteractionView)
	e := New(store, store, store)
	ctx := context.Background()

	got, err := e.Recommendations(ctx, 1, 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, int64(2), got[0].ID)
	assert.NotContains(t, ids(got), int64(1), "interacted property never recommended")
	assert.LessOrEqual(t, len(got), 3)

	again, err := e.Recommendations(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, ids(got), ids(again), "identical inputs, identical ordered output")
}

func TestLimitIsUpperBoundNotPadded(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addProperty(1, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(2, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(3, "Lisbon", "apartment", "100", 2, "4.0", 0)
	store.addProperty(4, "Lisbon", "apartment", "100", 2, "4.0", 0)

	store.interact(1, 1, domain.InteractionFavorite)
	e := New(store, store, store)

	got, err := e.ContentBasedRecommendations(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, got, 3, "eligible pool of 3 is returned as-is for limit 5")
}

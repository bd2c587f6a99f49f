package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/repository"
	"github.com/rs/zerolog"
)

const topListSize = 10

type PropertyService struct {
	repo *repository.Repository
	log  zerolog.Logger
}

func NewPropertyService(repo *repository.Repository, log zerolog.Logger) *PropertyService {
	return &PropertyService{
		repo: repo,
		log:  log.With().Str("component", "properties").Logger(),
	}
}

func (s *PropertyService) Create(ctx context.Context, p *domain.Property) error {
	exists, err := s.repo.UserExists(ctx, p.LandlordID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	p.Available = true
	if err := s.repo.CreateProperty(ctx, p); err != nil {
		return err
	}
	s.log.Info().Int64("property_id", p.ID).Int64("landlord_id", p.LandlordID).Msg("property created")
	return nil
}

// checkOwnership loads a property and verifies the actor may manage it.
// Admins manage everything; landlords only their own listings.
func (s *PropertyService) checkOwnership(ctx context.Context, propertyID, actorID int64, role domain.Role) (*domain.Property, error) {
	p, err := s.repo.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && p.LandlordID != actorID {
		return nil, domain.ErrNotOwner
	}
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, propertyID, actorID int64, role domain.Role, updated *domain.Property) (*domain.Property, error) {
	existing, err := s.checkOwnership(ctx, propertyID, actorID, role)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.LandlordID = existing.LandlordID
	if err := s.repo.UpdateProperty(ctx, updated); err != nil {
		return nil, err
	}
	return s.repo.PropertyByID(ctx, propertyID)
}

func (s *PropertyService) Delete(ctx context.Context, propertyID, actorID int64, role domain.Role) error {
	if _, err := s.checkOwnership(ctx, propertyID, actorID, role); err != nil {
		return err
	}
	if err := s.repo.DeleteProperty(ctx, propertyID); err != nil {
		return err
	}
	s.log.Info().Int64("property_id", propertyID).Msg("property deleted")
	return nil
}

// Get returns one listing and bumps its view counter.
func (s *PropertyService) Get(ctx context.Context, propertyID int64) (*domain.Property, error) {
	p, err := s.repo.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViewCount(ctx, propertyID); err != nil {
		s.log.Warn().Err(err).Int64("property_id", propertyID).Msg("view count increment failed")
	}
	return p, nil
}

func (s *PropertyService) List(ctx context.Context, page, size int) ([]domain.Property, int, error) {
	return s.repo.ListAvailableProperties(ctx, page, size)
}

func (s *PropertyService) Search(ctx context.Context, search repository.PropertySearch, page, size int) ([]domain.Property, int, error) {
	return s.repo.SearchProperties(ctx, search, page, size)
}

func (s *PropertyService) ByLandlord(ctx context.Context, landlordID int64, page, size int) ([]domain.Property, int, error) {
	return s.repo.PropertiesByLandlord(ctx, landlordID, page, size)
}

func (s *PropertyService) Popular(ctx context.Context) ([]domain.Property, error) {
	return s.repo.TopByBookingCount(ctx, topListSize)
}

func (s *PropertyService) TopRated(ctx context.Context) ([]domain.Property, error) {
	return s.repo.TopByRating(ctx, topListSize)
}

// AppendImages merges newly uploaded image paths into a listing.
func (s *PropertyService) AppendImages(ctx context.Context, propertyID, actorID int64, role domain.Role, urls []string) (*domain.Property, error) {
	p, err := s.checkOwnership(ctx, propertyID, actorID, role)
	if err != nil {
		return nil, err
	}
	merged := append(append([]string(nil), p.Images...), urls...)
	if err := s.repo.UpdatePropertyImages(ctx, propertyID, merged); err != nil {
		return nil, err
	}
	p.Images = merged
	return p, nil
}

// Occupancy reports, per listing of a landlord, how many rooms are
// occupied today by pending or confirmed stays.
func (s *PropertyService) Occupancy(ctx context.Context, landlordID int64, page, size int) ([]domain.PropertyOccupancy, int, error) {
	props, total, err := s.repo.PropertiesByLandlord(ctx, landlordID, page, size)
	if err != nil {
		return nil, 0, err
	}
	if len(props) == 0 {
		return []domain.PropertyOccupancy{}, total, nil
	}

	ids := make([]int64, len(props))
	for i, p := range props {
		ids[i] = p.ID
	}
	today := truncateToDay(time.Now())
	stats, err := s.repo.ActiveOccupancy(ctx, ids, today)
	if err != nil {
		return nil, 0, err
	}

	report := make([]domain.PropertyOccupancy, len(props))
	for i, p := range props {
		stat := stats[p.ID]
		remaining := p.Bedrooms - stat.OccupiedRooms
		if remaining < 0 {
			remaining = 0
		}
		report[i] = domain.PropertyOccupancy{
			ID:             p.ID,
			Title:          p.Title,
			City:           p.City,
			Address:        p.Address,
			Price:          p.Price,
			Bedrooms:       p.Bedrooms,
			MaxGuests:      p.MaxGuests,
			PropertyType:   p.PropertyType,
			BookingCount:   p.BookingCount,
			OccupiedRooms:  stat.OccupiedRooms,
			RemainingRooms: remaining,
			ActiveGuests:   stat.ActiveGuests,
		}
	}
	return report, total, nil
}

// DailyAvailability returns the booking calendar of a property for the
// [from, to) date range.
func (s *PropertyService) DailyAvailability(ctx context.Context, propertyID int64, from, to time.Time) ([]domain.DailyAvailability, error) {
	if !to.After(from) {
		return nil, domain.ErrInvalidDateRange
	}
	p, err := s.repo.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.ActiveOrdersOverlapping(ctx, propertyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load orders for availability: %w", err)
	}
	return dailyAvailability(p, orders, from, to), nil
}

func dailyAvailability(p *domain.Property, orders []domain.Order, from, to time.Time) []domain.DailyAvailability {
	var days []domain.DailyAvailability
	for d := truncateToDay(from); d.Before(to); d = d.AddDate(0, 0, 1) {
		rooms, guests := 0, 0
		for _, o := range orders {
			if o.ActiveOn(d) {
				rooms++
				guests += o.GuestCount
			}
		}
		days = append(days, domain.DailyAvailability{
			Date:            d.Format("2006-01-02"),
			BookedRooms:     rooms,
			RemainingRooms:  maxInt(p.Bedrooms-rooms, 0),
			BookedGuests:    guests,
			RemainingGuests: maxInt(p.MaxGuests-guests, 0),
		})
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

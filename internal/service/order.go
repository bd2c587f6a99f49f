package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lodgewise/homestay-backend/internal/cache"
	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   zerolog.Logger
}

func NewOrderService(repo *repository.Repository, c *cache.Cache, log zerolog.Logger) *OrderService {
	return &OrderService{
		repo:  repo,
		cache: c,
		log:   log.With().Str("component", "orders").Logger(),
	}
}

type CreateOrderInput struct {
	PropertyID   int64
	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestCount   int
	Remarks      string
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func stayNights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// stayTotal is the nightly price times the number of nights, computed
// in decimals end to end.
func stayTotal(nightly decimal.Decimal, nights int) decimal.Decimal {
	return nightly.Mul(decimal.NewFromInt(int64(nights)))
}

func (s *OrderService) Create(ctx context.Context, userID int64, in CreateOrderInput) (*domain.Order, error) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	property, err := s.repo.PropertyByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.Available {
		return nil, domain.ErrPropertyUnavailable
	}

	nights := stayNights(in.CheckInDate, in.CheckOutDate)
	if nights < 1 {
		return nil, domain.ErrInvalidDateRange
	}
	if in.CheckInDate.Before(truncateToDay(time.Now())) {
		return nil, domain.ErrInvalidDateRange
	}

	order := &domain.Order{
		OrderNumber:  newOrderNumber(),
		UserID:       userID,
		PropertyID:   property.ID,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
		GuestCount:   in.GuestCount,
		TotalPrice:   stayTotal(property.Price, nights),
		Status:       domain.OrderPending,
		Remarks:      in.Remarks,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.repo.IncrementBookingCount(ctx, property.ID); err != nil {
		s.log.Warn().Err(err).Int64("property_id", property.ID).Msg("booking count increment failed")
	}

	// Booking is a strong behavioural signal for the recommendation
	// engine, so it lands in the interaction log too.
	booked := &domain.Interaction{
		UserID:     userID,
		PropertyID: property.ID,
		Kind:       domain.InteractionBook,
	}
	if err := s.repo.CreateInteraction(ctx, booked); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("book interaction insert failed")
	}
	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation failed")
	}

	s.log.Info().
		Str("order_number", order.OrderNumber).
		Int64("user_id", userID).
		Int64("property_id", property.ID).
		Int("nights", nights).
		Msg("order created")
	return order, nil
}

// checkAccess verifies the actor owns the order, unless they are admin.
func checkAccess(o *domain.Order, actorID int64, role domain.Role) error {
	if role != domain.RoleAdmin && o.UserID != actorID {
		return domain.ErrNotOwner
	}
	return nil
}

func (s *OrderService) Get(ctx context.Context, orderID, actorID int64, role domain.Role) (*domain.Order, error) {
	order, err := s.repo.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(order, actorID, role); err != nil {
		return nil, err
	}
	return s.attachProperty(ctx, order), nil
}

func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string, actorID int64, role domain.Role) (*domain.Order, error) {
	order, err := s.repo.OrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(order, actorID, role); err != nil {
		return nil, err
	}
	return s.attachProperty(ctx, order), nil
}

// ListByUser returns one page of a user's orders, newest first, with
// their properties attached in one batch read.
func (s *OrderService) ListByUser(ctx context.Context, userID int64, page, size int) ([]domain.Order, int, error) {
	orders, total, err := s.repo.OrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.PropertyID)
	}
	byID, err := s.repo.PropertiesByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("attach properties: %w", err)
	}
	for i := range orders {
		if p, ok := byID[orders[i].PropertyID]; ok {
			prop := p
			orders[i].Property = &prop
		}
	}
	return orders, total, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID, actorID int64, role domain.Role, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(order, actorID, role); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, orderID, actorID int64, role domain.Role) error {
	order, err := s.repo.OrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := checkAccess(order, actorID, role); err != nil {
		return err
	}
	if order.Status != domain.OrderPending {
		return domain.ErrOrderNotCancellable
	}
	return s.repo.UpdateOrderStatus(ctx, orderID, domain.OrderCancelled)
}

func (s *OrderService) attachProperty(ctx context.Context, order *domain.Order) *domain.Order {
	p, err := s.repo.PropertyByID(ctx, order.PropertyID)
	if err == nil {
		order.Property = p
	}
	return order
}

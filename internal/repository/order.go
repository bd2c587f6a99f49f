package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lodgewise/homestay-backend/internal/domain"
)

const orderColumns = `id, order_number, user_id, property_id, check_in_date,
	check_out_date, guest_count, total_price, status, remarks, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.PropertyID, &o.CheckInDate,
		&o.CheckOutDate, &o.GuestCount, &o.TotalPrice, &o.Status, &o.Remarks,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repository) CreateOrder(ctx context.Context, o *domain.Order) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, property_id, check_in_date,
			check_out_date, guest_count, total_price, status, remarks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		o.OrderNumber, o.UserID, o.PropertyID, o.CheckInDate, o.CheckOutDate,
		o.GuestCount, o.TotalPrice, o.Status, o.Remarks,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.OrderNumber, err)
	}
	return nil
}

func (r *Repository) OrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order id=%d: %w", orderID, err)
	}
	return o, nil
}

func (r *Repository) OrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order number=%s: %w", orderNumber, err)
	}
	return o, nil
}

func (r *Repository) OrdersByUser(ctx context.Context, userID int64, page, size int) ([]domain.Order, int, error) {
	offset := (page - 1) * size
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders for user %d: %w", userID, err)
	}
	return orders, total, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status)
	if err != nil {
		return fmt.Errorf("update status for order %d: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// OccupancyStat aggregates the active orders for one property.
type OccupancyStat struct {
	OccupiedRooms int
	ActiveGuests  int
}

// ActiveOccupancy counts, per property, the orders occupying it on the
// given date. An order occupies from check-in (inclusive) to check-out
// (exclusive) while pending or confirmed.
func (r *Repository) ActiveOccupancy(ctx context.Context, propertyIDs []int64, on time.Time) (map[int64]OccupancyStat, error) {
	stats := make(map[int64]OccupancyStat)
	if len(propertyIDs) == 0 {
		return stats, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT property_id, COUNT(*), COALESCE(SUM(guest_count), 0)
		 FROM orders
		 WHERE property_id = ANY($1)
		   AND status IN ($2, $3)
		   AND check_in_date <= $4
		   AND check_out_date > $4
		 GROUP BY property_id`,
		propertyIDs, domain.OrderPending, domain.OrderConfirmed, on)
	if err != nil {
		return nil, fmt.Errorf("query active occupancy: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var propertyID int64
		var stat OccupancyStat
		if err := rows.Scan(&propertyID, &stat.OccupiedRooms, &stat.ActiveGuests); err != nil {
			return nil, fmt.Errorf("scan occupancy: %w", err)
		}
		stats[propertyID] = stat
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupancy: %w", err)
	}
	return stats, nil
}

// ActiveOrdersOverlapping returns the pending or confirmed orders for a
// property whose stay intersects the [from, to) date range.
func (r *Repository) ActiveOrdersOverlapping(ctx context.Context, propertyID int64, from, to time.Time) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE property_id = $1
		   AND status IN ($2, $3)
		   AND check_in_date < $5
		   AND check_out_date > $4
		 ORDER BY check_in_date, id`,
		propertyID, domain.OrderPending, domain.OrderConfirmed, from, to)
	if err != nil {
		return nil, fmt.Errorf("query overlapping orders for property %d: %w", propertyID, err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overlapping orders: %w", err)
	}
	return orders, nil
}

func (r *Repository) CountOrders(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

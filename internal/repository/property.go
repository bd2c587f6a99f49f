package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const propertyColumns = `id, title, description, city, district, address, price,
	bedrooms, bathrooms, max_guests, property_type, amenities, images, available,
	landlord_id, rating, review_count, view_count, booking_count, created_at, updated_at`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	p := &domain.Property{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.City, &p.District, &p.Address,
		&p.Price, &p.Bedrooms, &p.Bathrooms, &p.MaxGuests, &p.PropertyType,
		&p.Amenities, &p.Images, &p.Available, &p.LandlordID, &p.Rating,
		&p.ReviewCount, &p.ViewCount, &p.BookingCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) collectProperties(rows pgx.Rows) ([]domain.Property, error) {
	defer rows.Close()
	var props []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		props = append(props, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return props, nil
}

// PropertyByID satisfies the engine's property reader.
func (r *Repository) PropertyByID(ctx context.Context, propertyID int64) (*domain.Property, error) {
	p, err := scanProperty(r.pool.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, propertyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("query property id=%d: %w", propertyID, err)
	}
	return p, nil
}

// AvailableProperties returns every available listing in id order, the
// candidate set for content-based scoring.
func (r *Repository) AvailableProperties(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE available ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query available properties: %w", err)
	}
	return r.collectProperties(rows)
}

// TopByBookingCount is the popularity cold-start pool. Ties break on id
// so the ranking is reproducible.
func (r *Repository) TopByBookingCount(ctx context.Context, limit int) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties
		 WHERE available ORDER BY booking_count DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular properties: %w", err)
	}
	return r.collectProperties(rows)
}

// TopByRating is the rating cold-start pool.
func (r *Repository) TopByRating(ctx context.Context, limit int) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties
		 WHERE available ORDER BY rating DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top rated properties: %w", err)
	}
	return r.collectProperties(rows)
}

func (r *Repository) CreateProperty(ctx context.Context, p *domain.Property) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO properties (title, description, city, district, address, price,
			bedrooms, bathrooms, max_guests, property_type, amenities, images,
			available, landlord_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, rating, review_count, view_count, booking_count, created_at, updated_at`,
		p.Title, p.Description, p.City, p.District, p.Address, p.Price,
		p.Bedrooms, p.Bathrooms, p.MaxGuests, p.PropertyType, p.Amenities, p.Images,
		p.Available, p.LandlordID,
	).Scan(&p.ID, &p.Rating, &p.ReviewCount, &p.ViewCount, &p.BookingCount,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert property %q: %w", p.Title, err)
	}
	return nil
}

func (r *Repository) UpdateProperty(ctx context.Context, p *domain.Property) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE properties SET title = $2, description = $3, city = $4, district = $5,
			address = $6, price = $7, bedrooms = $8, bathrooms = $9, max_guests = $10,
			property_type = $11, amenities = $12, images = $13, available = $14,
			updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Title, p.Description, p.City, p.District, p.Address, p.Price,
		p.Bedrooms, p.Bathrooms, p.MaxGuests, p.PropertyType, p.Amenities, p.Images,
		p.Available)
	if err != nil {
		return fmt.Errorf("update property %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *Repository) UpdatePropertyImages(ctx context.Context, propertyID int64, images []string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE properties SET images = $2, updated_at = now() WHERE id = $1`,
		propertyID, images)
	if err != nil {
		return fmt.Errorf("update images for property %d: %w", propertyID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *Repository) DeleteProperty(ctx context.Context, propertyID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, propertyID)
	if err != nil {
		return fmt.Errorf("delete property %d: %w", propertyID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// ListAvailableProperties returns one page of available listings plus
// the total available count.
func (r *Repository) ListAvailableProperties(ctx context.Context, page, size int) ([]domain.Property, int, error) {
	offset := (page - 1) * size
	rows, err := r.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties
		 WHERE available ORDER BY id LIMIT $1 OFFSET $2`, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query properties page %d: %w", page, err)
	}
	props, err := r.collectProperties(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM properties WHERE available`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count available properties: %w", err)
	}
	return props, total, nil
}

// PropertySearch holds the optional search filters. Nil pointers mean
// the filter is not applied.
type PropertySearch struct {
	City        string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinBedrooms *int
}

func (r *Repository) SearchProperties(ctx context.Context, search PropertySearch, page, size int) ([]domain.Property, int, error) {
	conditions := []string{"available"}
	var args []any

	if search.City != "" {
		args = append(args, strings.ToLower(search.City))
		conditions = append(conditions, fmt.Sprintf("LOWER(city) = $%d", len(args)))
	}
	if search.MinPrice != nil {
		args = append(args, *search.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if search.MaxPrice != nil {
		args = append(args, *search.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if search.MinBedrooms != nil {
		args = append(args, *search.MinBedrooms)
		conditions = append(conditions, fmt.Sprintf("bedrooms >= $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM properties WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count property search: %w", err)
	}

	args = append(args, size, (page-1)*size)
	rows, err := r.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE `+where+
			fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query property search: %w", err)
	}
	props, err := r.collectProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return props, total, nil
}

func (r *Repository) PropertiesByLandlord(ctx context.Context, landlordID int64, page, size int) ([]domain.Property, int, error) {
	offset := (page - 1) * size
	rows, err := r.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties
		 WHERE landlord_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		landlordID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query properties for landlord %d: %w", landlordID, err)
	}
	props, err := r.collectProperties(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM properties WHERE landlord_id = $1`, landlordID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties for landlord %d: %w", landlordID, err)
	}
	return props, total, nil
}

// PropertiesByIDs resolves a batch of ids; missing ids are simply
// absent from the result.
func (r *Repository) PropertiesByIDs(ctx context.Context, ids []int64) (map[int64]domain.Property, error) {
	if len(ids) == 0 {
		return map[int64]domain.Property{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query properties by ids: %w", err)
	}
	props, err := r.collectProperties(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *Repository) IncrementViewCount(ctx context.Context, propertyID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE properties SET view_count = view_count + 1 WHERE id = $1`, propertyID)
	if err != nil {
		return fmt.Errorf("increment view count for property %d: %w", propertyID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *Repository) IncrementBookingCount(ctx context.Context, propertyID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE properties SET booking_count = booking_count + 1 WHERE id = $1`, propertyID)
	if err != nil {
		return fmt.Errorf("increment booking count for property %d: %w", propertyID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *Repository) CountProperties(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM properties`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return total, nil
}

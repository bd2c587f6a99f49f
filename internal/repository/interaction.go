package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lodgewise/homestay-backend/internal/domain"
)

func (r *Repository) CreateInteraction(ctx context.Context, it *domain.Interaction) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_property_interactions (user_id, property_id, kind, rating)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		it.UserID, it.PropertyID, it.Kind, it.Rating,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert interaction user=%d property=%d: %w", it.UserID, it.PropertyID, err)
	}
	return nil
}

func (r *Repository) collectInteractions(rows pgx.Rows) ([]domain.Interaction, error) {
	defer rows.Close()
	var items []domain.Interaction
	for rows.Next() {
		var it domain.Interaction
		if err := rows.Scan(&it.ID, &it.UserID, &it.PropertyID, &it.Kind, &it.Rating, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return items, nil
}

// InteractionsByUser satisfies the engine's interaction reader.
func (r *Repository) InteractionsByUser(ctx context.Context, userID int64) ([]domain.Interaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, property_id, kind, rating, created_at
		 FROM user_property_interactions
		 WHERE user_id = $1
		 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query interactions for user %d: %w", userID, err)
	}
	return r.collectInteractions(rows)
}

// AllInteractions loads the full interaction log for the collaborative
// user index.
func (r *Repository) AllInteractions(ctx context.Context) ([]domain.Interaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, property_id, kind, rating, created_at
		 FROM user_property_interactions
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query all interactions: %w", err)
	}
	return r.collectInteractions(rows)
}

func (r *Repository) CountInteractions(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_property_interactions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return total, nil
}

// Package repository holds the PostgreSQL persistence layer. All SQL is
// hand-written against pgx; row-not-found conditions surface as the
// domain sentinel errors.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

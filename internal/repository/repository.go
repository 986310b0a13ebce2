package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-sentiment/internal/store"
)

// ErrNotFound indicates the requested table holds no rows.
var ErrNotFound = errors.New("repository: not found")

// Repository aggregates all dataset repositories.
type Repository struct {
	Movies *MoviesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Movies: &MoviesRepository{pool: pool},
	}
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

// Store owns the connection pool and hands out the record stores.
type Store struct {
	pool *pgxpool.Pool
}

func Open(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (s *Store) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.pool)
}

func (s *Store) Restaurants() *RestaurantStore {
	return &RestaurantStore{pool: s.pool}
}

func (s *Store) Reservations() *ReservationStore {
	return &ReservationStore{pool: s.pool}
}

// storeErr wraps persistence failures while letting domain errors pass
// through untouched.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, internaltypes.ErrRestaurantNotFound),
		errors.Is(err, internaltypes.ErrReservationNotFound),
		errors.Is(err, internaltypes.ErrRestaurantFullyBooked),
		errors.Is(err, internaltypes.ErrDayFullyBooked):
		return err
	}
	return internaltypes.WrapStore(op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

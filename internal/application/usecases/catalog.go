package usecases

import (
	"context"
	"log/slog"
	"time"

	"github.com/breynerciro/restaurante-app/internal/domain/restaurant"
)

// CatalogService exposes the restaurant catalog operations.
type CatalogService struct {
	Restaurants RestaurantStore
	Now         func() time.Time
	Log         *slog.Logger
}

func (s *CatalogService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CatalogService) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func (s *CatalogService) Create(ctx context.Context, in restaurant.CreateInput) (restaurant.Restaurant, error) {
	if err := in.Validate(); err != nil {
		return restaurant.Restaurant{}, err
	}
	created, err := s.Restaurants.Create(ctx, restaurant.New(in, s.clock()))
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	s.logger().Info("restaurant created", slog.Int64("id", created.ID), slog.String("name", created.Name))
	return created, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (restaurant.Restaurant, error) {
	return s.Restaurants.Get(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	return s.Restaurants.List(ctx)
}

func (s *CatalogService) Update(ctx context.Context, id int64, in restaurant.UpdateInput) (restaurant.Restaurant, error) {
	current, err := s.Restaurants.Get(ctx, id)
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	next, err := in.Apply(current)
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	updated, err := s.Restaurants.Update(ctx, next)
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	s.logger().Info("restaurant updated", slog.Int64("id", id))
	return updated, nil
}

// Delete removes the restaurant together with all of its reservations
// and returns how many reservations were removed.
func (s *CatalogService) Delete(ctx context.Context, id int64) (int, error) {
	removed, err := s.Restaurants.DeleteCascade(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger().Info("restaurant deleted", slog.Int64("id", id), slog.Int("removed_reservations", removed))
	return removed, nil
}

func (s *CatalogService) Filter(ctx context.Context, f restaurant.Filter) ([]restaurant.Restaurant, error) {
	return s.Restaurants.Filter(ctx, f)
}

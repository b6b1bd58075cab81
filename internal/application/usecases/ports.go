package usecases

import (
	"context"
	"time"

	"github.com/breynerciro/restaurante-app/internal/domain/reservation"
	"github.com/breynerciro/restaurante-app/internal/domain/restaurant"
)

// RestaurantStore persists the restaurant catalog.
type RestaurantStore interface {
	Create(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error)
	Get(ctx context.Context, id int64) (restaurant.Restaurant, error)
	List(ctx context.Context) ([]restaurant.Restaurant, error)
	Update(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error)
	// DeleteCascade removes the restaurant and every reservation it
	// owns in one transaction, returning how many reservations went
	// with it.
	DeleteCascade(ctx context.Context, id int64) (int, error)
	Filter(ctx context.Context, f restaurant.Filter) ([]restaurant.Restaurant, error)
}

// ReservationStore persists reservations. Every write-bearing method
// executes as a single atomic transaction.
type ReservationStore interface {
	// Admit runs fn inside one transaction. The counts fn observes and
	// the insert it performs see a consistent snapshot; two concurrent
	// Admit calls for the same restaurant and date serialize.
	Admit(ctx context.Context, fn func(ctx context.Context, tx AdmissionTx) error) error

	Get(ctx context.Context, id int64) (reservation.Reservation, error)
	List(ctx context.Context) ([]reservation.Reservation, error)
	ListPending(ctx context.Context) ([]reservation.Reservation, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]reservation.Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]reservation.Reservation, error)
	ListByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) ([]reservation.Reservation, error)
	CountByDate(ctx context.Context, date time.Time) (int, error)
	CountByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) (int, error)

	MarkCompleted(ctx context.Context, id int64) (reservation.Reservation, error)
	Delete(ctx context.Context, id int64) error
	PurgeCompleted(ctx context.Context) (int, error)
	// ReconcileExpired marks every pending reservation dated before
	// today as completed and returns the number mutated.
	ReconcileExpired(ctx context.Context, today time.Time) (int, error)
	// PurgeExpired deletes every pending reservation dated before
	// today and returns the number deleted.
	PurgeExpired(ctx context.Context, today time.Time) (int, error)
}

// AdmissionTx is the transactional surface for the count-then-insert
// sequence of reservation admission.
type AdmissionTx interface {
	// LockRestaurantDay re-verifies the restaurant exists and takes
	// the locks that serialize admissions for this restaurant and
	// date until the transaction ends.
	LockRestaurantDay(ctx context.Context, restaurantID int64, date time.Time) error
	CountByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) (int, error)
	CountByDate(ctx context.Context, date time.Time) (int, error)
	Insert(ctx context.Context, r reservation.Reservation) (reservation.Reservation, error)
}

// Package memory holds an in-memory implementation of the store
// ports. It backs DEV_MODE runs and keeps the service tests hermetic;
// its locking gives the same single-writer guarantees the Postgres
// store gets from transactions.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
	"github.com/breynerciro/restaurante-app/internal/domain/reservation"
	"github.com/breynerciro/restaurante-app/internal/domain/restaurant"
	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

type Store struct {
	mu sync.Mutex

	restaurants  map[int64]restaurant.Restaurant
	reservations map[int64]reservation.Reservation

	nextRestaurantID  int64
	nextReservationID int64
}

func New() *Store {
	return &Store{
		restaurants:       make(map[int64]restaurant.Restaurant),
		reservations:      make(map[int64]reservation.Reservation),
		nextRestaurantID:  1,
		nextReservationID: 1,
	}
}

func (s *Store) Restaurants() *RestaurantStore   { return &RestaurantStore{s: s} }
func (s *Store) Reservations() *ReservationStore { return &ReservationStore{s: s} }

func (s *Store) sortedReservations(keep func(reservation.Reservation) bool) []reservation.Reservation {
	var out []reservation.Reservation
	for _, r := range s.reservations {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RestaurantStore implements usecases.RestaurantStore in memory.
type RestaurantStore struct {
	s *Store
}

func (rs *RestaurantStore) Create(_ context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	r.ID = rs.s.nextRestaurantID
	rs.s.nextRestaurantID++
	rs.s.restaurants[r.ID] = r
	return r, nil
}

func (rs *RestaurantStore) Get(_ context.Context, id int64) (restaurant.Restaurant, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	r, ok := rs.s.restaurants[id]
	if !ok {
		return restaurant.Restaurant{}, internaltypes.ErrRestaurantNotFound
	}
	return r, nil
}

func (rs *RestaurantStore) List(_ context.Context) ([]restaurant.Restaurant, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()
	return rs.listLocked(restaurant.Filter{}), nil
}

func (rs *RestaurantStore) listLocked(f restaurant.Filter) []restaurant.Restaurant {
	var out []restaurant.Restaurant
	for _, r := range rs.s.restaurants {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (rs *RestaurantStore) Update(_ context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	if _, ok := rs.s.restaurants[r.ID]; !ok {
		return restaurant.Restaurant{}, internaltypes.ErrRestaurantNotFound
	}
	rs.s.restaurants[r.ID] = r
	return r, nil
}

func (rs *RestaurantStore) DeleteCascade(_ context.Context, id int64) (int, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	if _, ok := rs.s.restaurants[id]; !ok {
		return 0, internaltypes.ErrRestaurantNotFound
	}
	removed := 0
	for rid, r := range rs.s.reservations {
		if r.RestaurantID == id {
			delete(rs.s.reservations, rid)
			removed++
		}
	}
	delete(rs.s.restaurants, id)
	return removed, nil
}

func (rs *RestaurantStore) Filter(_ context.Context, f restaurant.Filter) ([]restaurant.Restaurant, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()
	return rs.listLocked(f), nil
}

// ReservationStore implements usecases.ReservationStore in memory.
type ReservationStore struct {
	s *Store
}

func (vs *ReservationStore) Admit(ctx context.Context, fn func(ctx context.Context, tx usecases.AdmissionTx) error) error {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	return fn(ctx, &admissionTx{s: vs.s})
}

func (vs *ReservationStore) Get(_ context.Context, id int64) (reservation.Reservation, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()

	r, ok := vs.s.reservations[id]
	if !ok {
		return reservation.Reservation{}, internaltypes.ErrReservationNotFound
	}
	return r, nil
}

func (vs *ReservationStore) List(_ context.Context) ([]reservation.Reservation, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	return vs.s.sortedReservations(func(reservation.Reservation) bool { return true }), nil
}

func (vs *ReservationStore) ListPending(_ context.Context) ([]reservation.Reservation, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	return vs.s.sortedReservations(reservation.Reservation.Pending), nil
}

func (vs *ReservationStore) ListByRestaurant(_ context.Context, restaurantID int64) ([]reservation.Reservation, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	return vs.s.sortedReservations(func(r reservation.Reservation) bool {
		return r.RestaurantID == restaurantID
	}), nil
}

func (vs *ReservationStore) ListByDate(_ context.Context, date time.Time) ([]reservation.Reservation, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	return vs.s.sortedReservations(func(r reservation.Reservation) bool {
		return r.Date.Equal(date)
	}), nil
}

func (vs *ReservationStore) ListByRestaurantAndDate(_ context.Context, restaurantID int64, date time.Time) ([]reservation.Reservation, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	return vs.s.sortedReservations(func(r reservation.Reservation) bool {
		return r.RestaurantID == restaurantID && r.Date.Equal(date)
	}), nil
}

func (vs *ReservationStore) CountByDate(_ context.Context, date time.Time) (int, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	return countByDateLocked(vs.s, date), nil
}

func (vs *ReservationStore) CountByRestaurantAndDate(_ context.Context, restaurantID int64, date time.Time) (int, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	return countByRestaurantAndDateLocked(vs.s, restaurantID, date), nil
}

func (vs *ReservationStore) MarkCompleted(_ context.Context, id int64) (reservation.Reservation, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()

	r, ok := vs.s.reservations[id]
	if !ok {
		return reservation.Reservation{}, internaltypes.ErrReservationNotFound
	}
	r.Completed = true
	vs.s.reservations[id] = r
	return r, nil
}

func (vs *ReservationStore) Delete(_ context.Context, id int64) error {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()

	if _, ok := vs.s.reservations[id]; !ok {
		return internaltypes.ErrReservationNotFound
	}
	delete(vs.s.reservations, id)
	return nil
}

func (vs *ReservationStore) PurgeCompleted(_ context.Context) (int, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()

	count := 0
	for id, r := range vs.s.reservations {
		if r.Completed {
			delete(vs.s.reservations, id)
			count++
		}
	}
	return count, nil
}

func (vs *ReservationStore) ReconcileExpired(_ context.Context, today time.Time) (int, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()

	count := 0
	for id, r := range vs.s.reservations {
		if r.Pending() && r.Date.Before(today) {
			r.Completed = true
			vs.s.reservations[id] = r
			count++
		}
	}
	return count, nil
}

func (vs *ReservationStore) PurgeExpired(_ context.Context, today time.Time) (int, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()

	count := 0
	for id, r := range vs.s.reservations {
		if r.Pending() && r.Date.Before(today) {
			delete(vs.s.reservations, id)
			count++
		}
	}
	return count, nil
}

// admissionTx runs with the store mutex already held by Admit.
type admissionTx struct {
	s *Store
}

func (a *admissionTx) LockRestaurantDay(_ context.Context, restaurantID int64, _ time.Time) error {
	if _, ok := a.s.restaurants[restaurantID]; !ok {
		return internaltypes.ErrRestaurantNotFound
	}
	return nil
}

func (a *admissionTx) CountByRestaurantAndDate(_ context.Context, restaurantID int64, date time.Time) (int, error) {
	return countByRestaurantAndDateLocked(a.s, restaurantID, date), nil
}

func (a *admissionTx) CountByDate(_ context.Context, date time.Time) (int, error) {
	return countByDateLocked(a.s, date), nil
}

func (a *admissionTx) Insert(_ context.Context, r reservation.Reservation) (reservation.Reservation, error) {
	r.ID = a.s.nextReservationID
	a.s.nextReservationID++
	a.s.reservations[r.ID] = r
	return r, nil
}

func countByDateLocked(s *Store, date time.Time) int {
	n := 0
	for _, r := range s.reservations {
		if r.Date.Equal(date) {
			n++
		}
	}
	return n
}

func countByRestaurantAndDateLocked(s *Store, restaurantID int64, date time.Time) int {
	n := 0
	for _, r := range s.reservations {
		if r.RestaurantID == restaurantID && r.Date.Equal(date) {
			n++
		}
	}
	return n
}

package usecases

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/breynerciro/restaurante-app/internal/domain/reservation"
	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

// CreateReservationInput carries the caller-supplied fields for a new
// reservation. Time and PartySize may be zero; defaults apply.
type CreateReservationInput struct {
	RestaurantID  int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          string
	Time          string
	PartySize     int
}

// ReservationDetail pairs a reservation with its restaurant's display
// name for responses.
type ReservationDetail struct {
	reservation.Reservation
	RestaurantName string
}

// AdmissionService decides whether reservations may be created and
// drives their lifecycle.
type AdmissionService struct {
	Reservations ReservationStore
	Restaurants  RestaurantStore
	Caps         reservation.Caps
	Now          func() time.Time
	Log          *slog.Logger
}

func (s *AdmissionService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AdmissionService) today() time.Time {
	return reservation.DateOnly(s.clock())
}

func (s *AdmissionService) caps() reservation.Caps {
	c := s.Caps
	if c.PerRestaurantDaily <= 0 {
		c.PerRestaurantDaily = reservation.DefaultPerRestaurantDailyCap
	}
	if c.GlobalDaily <= 0 {
		c.GlobalDaily = reservation.DefaultGlobalDailyCap
	}
	return c
}

func (s *AdmissionService) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// Create runs the admission pipeline: required fields, restaurant
// existence, date shape, temporal validity, per-restaurant cap,
// global cap, then a single transactional insert. The first failing
// check wins and nothing is persisted on rejection.
func (s *AdmissionService) Create(ctx context.Context, in CreateReservationInput) (ReservationDetail, error) {
	if in.RestaurantID == 0 {
		return ReservationDetail{}, internaltypes.MissingFieldError{Field: "restaurant_id"}
	}
	for _, f := range []struct{ name, value string }{
		{"customer_name", in.CustomerName},
		{"customer_email", in.CustomerEmail},
		{"customer_phone", in.CustomerPhone},
		{"date", in.Date},
	} {
		if strings.TrimSpace(f.value) == "" {
			return ReservationDetail{}, internaltypes.MissingFieldError{Field: f.name}
		}
	}

	rest, err := s.Restaurants.Get(ctx, in.RestaurantID)
	if err != nil {
		return ReservationDetail{}, err
	}

	date, err := reservation.ParseDate(in.Date)
	if err != nil {
		return ReservationDetail{}, err
	}
	if date.Before(s.today()) {
		return ReservationDetail{}, internaltypes.ErrPastDate
	}

	slot, err := reservation.NormalizeTime(in.Time)
	if err != nil {
		return ReservationDetail{}, err
	}
	partySize, err := reservation.NormalizePartySize(in.PartySize)
	if err != nil {
		return ReservationDetail{}, err
	}

	caps := s.caps()
	var created reservation.Reservation
	err = s.Reservations.Admit(ctx, func(ctx context.Context, tx AdmissionTx) error {
		if err := tx.LockRestaurantDay(ctx, rest.ID, date); err != nil {
			return err
		}
		forRestaurant, err := tx.CountByRestaurantAndDate(ctx, rest.ID, date)
		if err != nil {
			return err
		}
		if forRestaurant >= caps.PerRestaurantDaily {
			return internaltypes.ErrRestaurantFullyBooked
		}
		forDay, err := tx.CountByDate(ctx, date)
		if err != nil {
			return err
		}
		if forDay >= caps.GlobalDaily {
			return internaltypes.ErrDayFullyBooked
		}
		created, err = tx.Insert(ctx, reservation.Reservation{
			RestaurantID:  rest.ID,
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
			Date:          date,
			Time:          slot,
			PartySize:     partySize,
			Completed:     false,
			CreatedAt:     s.clock(),
		})
		return err
	})
	if err != nil {
		return ReservationDetail{}, err
	}

	s.logger().Info("reservation created",
		slog.Int64("id", created.ID),
		slog.Int64("restaurant_id", rest.ID),
		slog.String("date", created.Date.Format(reservation.DateLayout)))
	return ReservationDetail{Reservation: created, RestaurantName: rest.Name}, nil
}

// MarkCompleted flips a pending reservation to completed.
func (s *AdmissionService) MarkCompleted(ctx context.Context, id int64) (ReservationDetail, error) {
	updated, err := s.Reservations.MarkCompleted(ctx, id)
	if err != nil {
		return ReservationDetail{}, err
	}
	s.logger().Info("reservation completed", slog.Int64("id", id))
	return s.withName(ctx, updated)
}

// Cancel removes a single reservation.
func (s *AdmissionService) Cancel(ctx context.Context, id int64) error {
	if err := s.Reservations.Delete(ctx, id); err != nil {
		return err
	}
	s.logger().Info("reservation cancelled", slog.Int64("id", id))
	return nil
}

// PurgeCompleted deletes all completed reservations.
func (s *AdmissionService) PurgeCompleted(ctx context.Context) (int, error) {
	count, err := s.Reservations.PurgeCompleted(ctx)
	if err != nil {
		return 0, err
	}
	s.logger().Info("completed reservations purged", slog.Int("count", count))
	return count, nil
}

// ReconcileExpired marks every pending reservation dated before today
// as completed, preserving history, and returns the number mutated.
func (s *AdmissionService) ReconcileExpired(ctx context.Context) (int, error) {
	count, err := s.Reservations.ReconcileExpired(ctx, s.today())
	if err != nil {
		return 0, err
	}
	s.logger().Info("expired reservations reconciled", slog.Int("count", count))
	return count, nil
}

// PurgeExpired deletes every pending reservation dated before today
// and returns the number deleted. Completed and future reservations
// are never touched.
func (s *AdmissionService) PurgeExpired(ctx context.Context) (int, error) {
	count, err := s.Reservations.PurgeExpired(ctx, s.today())
	if err != nil {
		return 0, err
	}
	s.logger().Info("expired reservations purged", slog.Int("count", count))
	return count, nil
}

// List returns all reservations with restaurant names resolved.
func (s *AdmissionService) List(ctx context.Context) ([]ReservationDetail, error) {
	items, err := s.Reservations.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, items)
}

// ListPending returns the reservations still awaiting completion.
func (s *AdmissionService) ListPending(ctx context.Context) ([]ReservationDetail, error) {
	items, err := s.Reservations.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, items)
}

// ListByDate returns the reservations for one calendar date.
func (s *AdmissionService) ListByDate(ctx context.Context, date time.Time) ([]ReservationDetail, error) {
	items, err := s.Reservations.ListByDate(ctx, reservation.DateOnly(date))
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, items)
}

// ListByRestaurant returns a restaurant's reservations, optionally
// narrowed to one date when date is non-zero. The restaurant must
// exist.
func (s *AdmissionService) ListByRestaurant(ctx context.Context, restaurantID int64, date time.Time) ([]ReservationDetail, error) {
	rest, err := s.Restaurants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	var items []reservation.Reservation
	if date.IsZero() {
		items, err = s.Reservations.ListByRestaurant(ctx, restaurantID)
	} else {
		items, err = s.Reservations.ListByRestaurantAndDate(ctx, restaurantID, reservation.DateOnly(date))
	}
	if err != nil {
		return nil, err
	}
	details := make([]ReservationDetail, 0, len(items))
	for _, r := range items {
		details = append(details, ReservationDetail{Reservation: r, RestaurantName: rest.Name})
	}
	return details, nil
}

// CountByDate reports how many reservations exist for one date.
func (s *AdmissionService) CountByDate(ctx context.Context, date time.Time) (int, error) {
	return s.Reservations.CountByDate(ctx, reservation.DateOnly(date))
}

// CountByRestaurantAndDate reports how many reservations a restaurant
// holds for one date.
func (s *AdmissionService) CountByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) (int, error) {
	return s.Reservations.CountByRestaurantAndDate(ctx, restaurantID, reservation.DateOnly(date))
}

func (s *AdmissionService) withName(ctx context.Context, r reservation.Reservation) (ReservationDetail, error) {
	rest, err := s.Restaurants.Get(ctx, r.RestaurantID)
	if err != nil {
		// The owning restaurant is gone; surface the reservation anyway.
		return ReservationDetail{Reservation: r}, nil
	}
	return ReservationDetail{Reservation: r, RestaurantName: rest.Name}, nil
}

func (s *AdmissionService) withNames(ctx context.Context, items []reservation.Reservation) ([]ReservationDetail, error) {
	restaurants, err := s.Restaurants.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(restaurants))
	for _, r := range restaurants {
		names[r.ID] = r.Name
	}
	details := make([]ReservationDetail, 0, len(items))
	for _, r := range items {
		details = append(details, ReservationDetail{Reservation: r, RestaurantName: names[r.RestaurantID]})
	}
	return details, nil
}

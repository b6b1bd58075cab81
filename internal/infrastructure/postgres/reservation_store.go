package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
	"github.com/breynerciro/restaurante-app/internal/domain/reservation"
	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

const reservationColumns = `id, restaurant_id, customer_name, customer_email, customer_phone, reservation_date, reservation_time, party_size, completed, created_at`

// ReservationStore is the Postgres-backed reservation store.
type ReservationStore struct {
	pool *pgxpool.Pool
}

func scanReservation(row interface{ Scan(dest ...any) error }) (reservation.Reservation, error) {
	var r reservation.Reservation
	err := row.Scan(&r.ID, &r.RestaurantID, &r.CustomerName, &r.CustomerEmail, &r.CustomerPhone,
		&r.Date, &r.Time, &r.PartySize, &r.Completed, &r.CreatedAt)
	if err != nil {
		return reservation.Reservation{}, err
	}
	r.Date = reservation.DateOnly(r.Date)
	return r, nil
}

func (s *ReservationStore) query(ctx context.Context, op, sql string, args ...any) ([]reservation.Reservation, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var out []reservation.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, r)
	}
	return out, storeErr(op, rows.Err())
}

func (s *ReservationStore) Get(ctx context.Context, id int64) (reservation.Reservation, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id)
	r, err := scanReservation(row)
	if err != nil {
		if isNoRows(err) {
			return reservation.Reservation{}, internaltypes.ErrReservationNotFound
		}
		return reservation.Reservation{}, storeErr("get reservation", err)
	}
	return r, nil
}

func (s *ReservationStore) List(ctx context.Context) ([]reservation.Reservation, error) {
	return s.query(ctx, "list reservations",
		`SELECT `+reservationColumns+` FROM reservations ORDER BY id`)
}

func (s *ReservationStore) ListPending(ctx context.Context) ([]reservation.Reservation, error) {
	return s.query(ctx, "list pending reservations",
		`SELECT `+reservationColumns+` FROM reservations WHERE NOT completed ORDER BY id`)
}

func (s *ReservationStore) ListByRestaurant(ctx context.Context, restaurantID int64) ([]reservation.Reservation, error) {
	return s.query(ctx, "list reservations by restaurant",
		`SELECT `+reservationColumns+` FROM reservations WHERE restaurant_id=$1 ORDER BY id`, restaurantID)
}

func (s *ReservationStore) ListByDate(ctx context.Context, date time.Time) ([]reservation.Reservation, error) {
	return s.query(ctx, "list reservations by date",
		`SELECT `+reservationColumns+` FROM reservations WHERE reservation_date=$1 ORDER BY id`, date)
}

func (s *ReservationStore) ListByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) ([]reservation.Reservation, error) {
	return s.query(ctx, "list reservations by restaurant and date",
		`SELECT `+reservationColumns+` FROM reservations WHERE restaurant_id=$1 AND reservation_date=$2 ORDER BY id`,
		restaurantID, date)
}

func (s *ReservationStore) CountByDate(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM reservations WHERE reservation_date=$1`, date).Scan(&n)
	return n, storeErr("count reservations by date", err)
}

func (s *ReservationStore) CountByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM reservations WHERE restaurant_id=$1 AND reservation_date=$2`,
		restaurantID, date).Scan(&n)
	return n, storeErr("count reservations by restaurant and date", err)
}

func (s *ReservationStore) MarkCompleted(ctx context.Context, id int64) (reservation.Reservation, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE reservations SET completed=TRUE WHERE id=$1 RETURNING `+reservationColumns, id)
	r, err := scanReservation(row)
	if err != nil {
		if isNoRows(err) {
			return reservation.Reservation{}, internaltypes.ErrReservationNotFound
		}
		return reservation.Reservation{}, storeErr("mark reservation completed", err)
	}
	return r, nil
}

func (s *ReservationStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return storeErr("delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return internaltypes.ErrReservationNotFound
	}
	return nil
}

func (s *ReservationStore) PurgeCompleted(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reservations WHERE completed`)
	if err != nil {
		return 0, storeErr("purge completed reservations", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *ReservationStore) ReconcileExpired(ctx context.Context, today time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE reservations SET completed=TRUE WHERE NOT completed AND reservation_date < $1`, today)
	if err != nil {
		return 0, storeErr("reconcile expired reservations", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *ReservationStore) PurgeExpired(ctx context.Context, today time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM reservations WHERE NOT completed AND reservation_date < $1`, today)
	if err != nil {
		return 0, storeErr("purge expired reservations", err)
	}
	return int(tag.RowsAffected()), nil
}

// Admit runs fn inside one transaction so the cap checks and the
// insert observe a consistent snapshot.
func (s *ReservationStore) Admit(ctx context.Context, fn func(ctx context.Context, tx usecases.AdmissionTx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storeErr("admit reservation", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &admissionTx{tx: tx}); err != nil {
		return err
	}
	return storeErr("admit reservation", tx.Commit(ctx))
}

type admissionTx struct {
	tx pgx.Tx
}

// LockRestaurantDay serializes admissions: the restaurant row lock
// covers the per-restaurant cap, the advisory lock on the date covers
// the global cap across restaurants. Both release at commit/rollback.
func (a *admissionTx) LockRestaurantDay(ctx context.Context, restaurantID int64, date time.Time) error {
	var id int64
	err := a.tx.QueryRow(ctx, `SELECT id FROM restaurants WHERE id=$1 FOR UPDATE`, restaurantID).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return internaltypes.ErrRestaurantNotFound
		}
		return storeErr("lock restaurant", err)
	}
	_, err = a.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, date.Format(reservation.DateLayout))
	return storeErr("lock reservation day", err)
}

func (a *admissionTx) CountByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) (int, error) {
	var n int
	err := a.tx.QueryRow(ctx,
		`SELECT count(*) FROM reservations WHERE restaurant_id=$1 AND reservation_date=$2`,
		restaurantID, date).Scan(&n)
	return n, storeErr("count reservations by restaurant and date", err)
}

func (a *admissionTx) CountByDate(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := a.tx.QueryRow(ctx, `SELECT count(*) FROM reservations WHERE reservation_date=$1`, date).Scan(&n)
	return n, storeErr("count reservations by date", err)
}

func (a *admissionTx) Insert(ctx context.Context, r reservation.Reservation) (reservation.Reservation, error) {
	row := a.tx.QueryRow(ctx, `
		INSERT INTO reservations (restaurant_id, customer_name, customer_email, customer_phone,
			reservation_date, reservation_time, party_size, completed, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+reservationColumns,
		r.RestaurantID, r.CustomerName, r.CustomerEmail, r.CustomerPhone,
		r.Date, r.Time, r.PartySize, r.Completed, r.CreatedAt,
	)
	created, err := scanReservation(row)
	if err != nil {
		return reservation.Reservation{}, storeErr("insert reservation", err)
	}
	return created, nil
}

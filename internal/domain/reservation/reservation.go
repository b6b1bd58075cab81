package reservation

import (
	"time"

	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

// DateLayout is the wire format for reservation dates.
const DateLayout = "2006-01-02"

const timeLayout = "15:04"

const (
	// DefaultTime is used when the caller omits the reservation time.
	DefaultTime = "12:00"
	// DefaultPartySize is used when the caller omits the party size.
	DefaultPartySize = 1
)

const (
	// DefaultPerRestaurantDailyCap bounds reservations per restaurant
	// per date. Operators can raise it with PER_RESTAURANT_DAILY_CAP.
	DefaultPerRestaurantDailyCap = 1
	// DefaultGlobalDailyCap bounds reservations per date across all
	// restaurants.
	DefaultGlobalDailyCap = 20
)

// Reservation is a time-boxed booking against a restaurant.
type Reservation struct {
	ID            int64
	RestaurantID  int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	// Date is the calendar date of the booking, held at UTC midnight.
	Date time.Time
	// Time is the wall-clock slot as an HH:MM string. It is never
	// combined with Date into a timestamp.
	Time      string
	PartySize int
	Completed bool
	CreatedAt time.Time
}

// Pending reports whether the reservation has not been completed.
func (r Reservation) Pending() bool { return !r.Completed }

// ExpiredAt reports whether the reservation's date is strictly before
// the given day.
func (r Reservation) ExpiredAt(today time.Time) bool {
	return r.Date.Before(DateOnly(today))
}

// Caps holds the configured admission limits.
type Caps struct {
	PerRestaurantDaily int
	GlobalDaily        int
}

// DefaultCaps returns the stock admission limits.
func DefaultCaps() Caps {
	return Caps{
		PerRestaurantDaily: DefaultPerRestaurantDailyCap,
		GlobalDaily:        DefaultGlobalDailyCap,
	}
}

// ParseDate parses a YYYY-MM-DD calendar date. Anything else fails
// with ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, internaltypes.ErrInvalidDate
	}
	return t, nil
}

// DateOnly truncates t to a calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeTime applies the default slot when s is empty and otherwise
// requires a parseable HH:MM wall-clock value.
func NormalizeTime(s string) (string, error) {
	if s == "" {
		return DefaultTime, nil
	}
	if _, err := time.Parse(timeLayout, s); err != nil {
		return "", internaltypes.ValidationError{Field: "time", Reason: "expected HH:MM"}
	}
	return s, nil
}

// NormalizePartySize applies the default when n is zero and rejects
// negative or otherwise non-positive sizes.
func NormalizePartySize(n int) (int, error) {
	if n == 0 {
		return DefaultPartySize, nil
	}
	if n < 0 {
		return 0, internaltypes.ValidationError{Field: "party_size", Reason: "must be a positive number"}
	}
	return n, nil
}

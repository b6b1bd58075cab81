package internaltypes

import (
	"errors"
	"fmt"
)

var (
	ErrRestaurantNotFound    = errors.New("restaurant not found")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrInvalidDate           = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrPastDate              = errors.New("reservations cannot be made for past dates")
	ErrRestaurantFullyBooked = errors.New("restaurant has reached its reservation limit for this date")
	ErrDayFullyBooked        = errors.New("the daily reservation limit for this date has been reached")
)

// MissingFieldError reports a required field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("the field %s is required", e.Field)
}

// ValidationError reports a field whose value is present but unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps an underlying persistence failure so callers can
// tell it apart from validation failures.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// WrapStore wraps err as a StoreError unless it is nil or already wrapped.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

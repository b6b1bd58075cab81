package web

import (
	"errors"
	"net/http"

	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

// errorStatus maps domain errors to HTTP status codes. Validation
// failures keep their message on the wire; anything unrecognized is a
// store-layer failure and stays generic.
type errorStatus struct {
	target error
	status int
}

var errorStatuses = []errorStatus{
	{internaltypes.ErrInvalidDate, http.StatusBadRequest},
	{internaltypes.ErrPastDate, http.StatusBadRequest},
	{internaltypes.ErrRestaurantFullyBooked, http.StatusBadRequest},
	{internaltypes.ErrDayFullyBooked, http.StatusBadRequest},
	{internaltypes.ErrRestaurantNotFound, http.StatusNotFound},
	{internaltypes.ErrReservationNotFound, http.StatusNotFound},
}

func mapError(err error) (int, string) {
	var missing internaltypes.MissingFieldError
	if errors.As(err, &missing) {
		return http.StatusBadRequest, missing.Error()
	}
	var invalid internaltypes.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, invalid.Error()
	}
	for _, m := range errorStatuses {
		if errors.Is(err, m.target) {
			return m.status, m.target.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

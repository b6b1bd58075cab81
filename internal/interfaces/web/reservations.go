package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
	"github.com/breynerciro/restaurante-app/internal/domain/reservation"
)

func (s *Server) listReservations(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		items []usecases.ReservationDetail
		err   error
	)
	if raw := c.QueryParam("date"); raw != "" {
		var date time.Time
		date, err = reservation.ParseDate(raw)
		if err != nil {
			return s.fail(c, err)
		}
		items, err = s.admission.ListByDate(ctx, date)
	} else {
		items, err = s.admission.List(ctx)
	}
	if err != nil {
		return s.fail(c, err)
	}
	return respondData(c, http.StatusOK, toReservationResponses(items))
}

type createReservationRequest struct {
	RestaurantID  int64  `json:"restaurant_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"party_size"`
}

func (s *Server) createReservation(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	created, err := s.admission.Create(c.Request().Context(), usecases.CreateReservationInput{
		RestaurantID:  req.RestaurantID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		Time:          req.Time,
		PartySize:     req.PartySize,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusCreated, toReservationResponse(created), "reservation created")
}

func (s *Server) cancelReservation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := s.admission.Cancel(c.Request().Context(), id); err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "reservation cancelled")
}

func (s *Server) completeReservation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	updated, err := s.admission.MarkCompleted(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusOK, toReservationResponse(updated), "reservation marked as completed")
}

func (s *Server) purgeCompletedReservations(c echo.Context) error {
	count, err := s.admission.PurgeCompleted(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusOK, map[string]int{"count": count},
		fmt.Sprintf("%d completed reservations deleted", count))
}

func (s *Server) listPendingReservations(c echo.Context) error {
	items, err := s.admission.ListPending(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return respondData(c, http.StatusOK, toReservationResponses(items))
}

func (s *Server) reconcileExpiredReservations(c echo.Context) error {
	count, err := s.admission.ReconcileExpired(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusOK, map[string]int{"count": count},
		fmt.Sprintf("%d expired reservations marked as completed", count))
}

func (s *Server) purgeExpiredReservations(c echo.Context) error {
	count, err := s.admission.PurgeExpired(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusOK, map[string]int{"count": count},
		fmt.Sprintf("%d expired reservations deleted", count))
}

func (s *Server) listReservationsByRestaurant(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	var date time.Time
	if raw := c.QueryParam("date"); raw != "" {
		date, err = reservation.ParseDate(raw)
		if err != nil {
			return s.fail(c, err)
		}
	}
	items, err := s.admission.ListByRestaurant(c.Request().Context(), id, date)
	if err != nil {
		return s.fail(c, err)
	}
	return respondData(c, http.StatusOK, toReservationResponses(items))
}

package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/breynerciro/restaurante-app/internal/domain/restaurant"
)

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

func (s *Server) listRestaurants(c echo.Context) error {
	items, err := s.catalog.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return respondData(c, http.StatusOK, toRestaurantResponses(items))
}

func (s *Server) getRestaurant(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	r, err := s.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return respondData(c, http.StatusOK, toRestaurantResponse(r))
}

type createRestaurantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PhotoURL    string `json:"photo_url"`
}

func (s *Server) createRestaurant(c echo.Context) error {
	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	created, err := s.catalog.Create(c.Request().Context(), restaurant.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusCreated, toRestaurantResponse(created), "restaurant created")
}

type updateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	PhotoURL    *string `json:"photo_url"`
}

func (s *Server) updateRestaurant(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	var req updateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	updated, err := s.catalog.Update(c.Request().Context(), id, restaurant.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusOK, toRestaurantResponse(updated), "restaurant updated")
}

func (s *Server) deleteRestaurant(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	removed, err := s.catalog.Delete(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return respondMessage(c, http.StatusOK, map[string]int{"removed_reservations": removed}, "restaurant deleted")
}

// filterRestaurants answers GET /api/restaurants/filter: letra is a
// case-sensitive name prefix, ciudad a case-insensitive city substring.
func (s *Server) filterRestaurants(c echo.Context) error {
	items, err := s.catalog.Filter(c.Request().Context(), restaurant.Filter{
		NamePrefix:   c.QueryParam("letra"),
		CityContains: c.QueryParam("ciudad"),
	})
	if err != nil {
		return s.fail(c, err)
	}
	return respondData(c, http.StatusOK, toRestaurantResponses(items))
}

func (s *Server) fail(c echo.Context, err error) error {
	status, msg := mapError(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err)
	}
	return respondError(c, status, msg)
}

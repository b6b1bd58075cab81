package web

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
	"github.com/breynerciro/restaurante-app/internal/domain/reservation"
	"github.com/breynerciro/restaurante-app/internal/domain/restaurant"
)

// envelope is the response shape every endpoint answers with.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: false, Error: message})
}

type restaurantResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PhotoURL    string `json:"photo_url"`
	CreatedAt   string `json:"created_at"`
}

func toRestaurantResponse(r restaurant.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		City:        r.City,
		PhotoURL:    r.PhotoURL,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toRestaurantResponses(items []restaurant.Restaurant) []restaurantResponse {
	out := make([]restaurantResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toRestaurantResponse(r))
	}
	return out
}

type reservationResponse struct {
	ID             int64  `json:"id"`
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name,omitempty"`
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	CustomerPhone  string `json:"customer_phone"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PartySize      int    `json:"party_size"`
	Completed      bool   `json:"completed"`
	CreatedAt      string `json:"created_at"`
}

func toReservationResponse(d usecases.ReservationDetail) reservationResponse {
	return reservationResponse{
		ID:             d.ID,
		RestaurantID:   d.RestaurantID,
		RestaurantName: d.RestaurantName,
		CustomerName:   d.CustomerName,
		CustomerEmail:  d.CustomerEmail,
		CustomerPhone:  d.CustomerPhone,
		Date:           d.Date.Format(reservation.DateLayout),
		Time:           d.Time,
		PartySize:      d.PartySize,
		Completed:      d.Completed,
		CreatedAt:      d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReservationResponses(items []usecases.ReservationDetail) []reservationResponse {
	out := make([]reservationResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toReservationResponse(d))
	}
	return out
}

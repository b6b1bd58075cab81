package web_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
	"github.com/breynerciro/restaurante-app/internal/domain/reservation"
	"github.com/breynerciro/restaurante-app/internal/infrastructure/memory"
	"github.com/breynerciro/restaurante-app/internal/interfaces/web"
)

var testNow = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

const (
	today    = "2026-03-10"
	tomorrow = "2026-03-11"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type testAPI struct {
	t         *testing.T
	handler   http.Handler
	admission *usecases.AdmissionService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.New()
	clock := func() time.Time { return testNow }
	catalog := &usecases.CatalogService{Restaurants: store.Restaurants(), Now: clock}
	admission := &usecases.AdmissionService{
		Reservations: store.Reservations(),
		Restaurants:  store.Restaurants(),
		Caps:         reservation.Caps{PerRestaurantDaily: 2, GlobalDaily: 20},
		Now:          clock,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := web.New(catalog, admission, log)
	return &testAPI{t: t, handler: srv.Handler(), admission: admission}
}

func (a *testAPI) do(method, path, body string) (int, apiEnvelope) {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env apiEnvelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func (a *testAPI) addRestaurant(name, city string) int64 {
	a.t.Helper()
	body := fmt.Sprintf(`{"name":%q,"description":"desc","address":"1 Main St","city":%q,"photo_url":"http://x/img.jpg"}`, name, city)
	status, env := a.do(http.MethodPost, "/api/restaurants", body)
	require.Equal(a.t, http.StatusCreated, status)
	var data struct {
		ID int64 `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.ID
}

func (a *testAPI) addReservation(restaurantID int64, date string) int64 {
	a.t.Helper()
	body := fmt.Sprintf(`{"restaurant_id":%d,"customer_name":"Ana","customer_email":"ana@example.com","customer_phone":"555-0100","date":%q}`, restaurantID, date)
	status, env := a.do(http.MethodPost, "/api/reservations", body)
	require.Equal(a.t, http.StatusCreated, status)
	var data struct {
		ID int64 `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.ID
}

func TestRestaurantLifecycle(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	id := api.addRestaurant("Pasta Place", "Springfield")

	status, env := api.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d", id), "")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
	var got struct {
		Name      string `json:"name"`
		City      string `json:"city"`
		CreatedAt string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, "Pasta Place", got.Name)
	require.Equal(t, "Springfield", got.City)
	require.Equal(t, testNow.Format(time.RFC3339), got.CreatedAt)

	status, env = api.do(http.MethodPut, fmt.Sprintf("/api/restaurants/%d", id), `{"city":"Shelbyville"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "restaurant updated", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, "Pasta Place", got.Name, "omitted fields untouched")
	require.Equal(t, "Shelbyville", got.City)

	status, env = api.do(http.MethodGet, "/api/restaurants", "")
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
}

func TestCreateRestaurantMissingField(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	status, env := api.do(http.MethodPost, "/api/restaurants", `{"name":"No City"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)
	require.Equal(t, "the field description is required", env.Error)
}

func TestGetRestaurantNotFound(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	status, env := api.do(http.MethodGet, "/api/restaurants/42", "")
	require.Equal(t, http.StatusNotFound, status)
	require.False(t, env.Success)
	require.Equal(t, "restaurant not found", env.Error)

	status, _ = api.do(http.MethodGet, "/api/restaurants/abc", "")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestFilterRestaurants(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	api.addRestaurant("Pasta Place", "Springfield")
	api.addRestaurant("pizza shack", "Springfield")
	api.addRestaurant("Burger Barn", "Shelbyville")

	status, env := api.do(http.MethodGet, "/api/restaurants/filter?letra=P", "")
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Pasta Place", list[0].Name)

	status, env = api.do(http.MethodGet, "/api/restaurants/filter?ciudad=spring", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)

	status, env = api.do(http.MethodGet, "/api/restaurants/filter?letra=Z", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Empty(t, list)
}

func TestDeleteRestaurantCascades(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	id := api.addRestaurant("Doomed Diner", "Springfield")
	api.addReservation(id, tomorrow)
	api.addReservation(id, today)

	status, env := api.do(http.MethodDelete, fmt.Sprintf("/api/restaurants/%d", id), "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "restaurant deleted", env.Message)
	var data struct {
		RemovedReservations int `json:"removed_reservations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, 2, data.RemovedReservations)

	status, env = api.do(http.MethodGet, "/api/reservations", "")
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Empty(t, list)
}

func TestCreateReservation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	id := api.addRestaurant("Pasta Place", "Springfield")

	body := fmt.Sprintf(`{"restaurant_id":%d,"customer_name":"Ana","customer_email":"ana@example.com","customer_phone":"555-0100","date":%q}`, id, tomorrow)
	status, env := api.do(http.MethodPost, "/api/reservations", body)
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)
	require.Equal(t, "reservation created", env.Message)

	var got struct {
		RestaurantName string `json:"restaurant_name"`
		Date           string `json:"date"`
		Time           string `json:"time"`
		PartySize      int    `json:"party_size"`
		Completed      bool   `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, "Pasta Place", got.RestaurantName)
	require.Equal(t, tomorrow, got.Date)
	require.Equal(t, "12:00", got.Time)
	require.Equal(t, 1, got.PartySize)
	require.False(t, got.Completed)
}

func TestCreateReservationErrors(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	id := api.addRestaurant("Pasta Place", "Springfield")

	reservationBody := func(restaurantID int64, date string) string {
		return fmt.Sprintf(`{"restaurant_id":%d,"customer_name":"Ana","customer_email":"ana@example.com","customer_phone":"555-0100","date":%q}`, restaurantID, date)
	}

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing customer name",
			body:       fmt.Sprintf(`{"restaurant_id":%d,"customer_email":"a@b.c","customer_phone":"1","date":%q}`, id, tomorrow),
			wantStatus: http.StatusBadRequest,
			wantError:  "the field customer_name is required",
		},
		{
			name:       "unknown restaurant",
			body:       reservationBody(999, tomorrow),
			wantStatus: http.StatusNotFound,
			wantError:  "restaurant not found",
		},
		{
			name:       "malformed date",
			body:       reservationBody(id, "11/03/2026"),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid date format, expected YYYY-MM-DD",
		},
		{
			name:       "past date",
			body:       reservationBody(id, "2026-03-09"),
			wantStatus: http.StatusBadRequest,
			wantError:  "reservations cannot be made for past dates",
		},
		{
			name:       "bad time",
			body:       fmt.Sprintf(`{"restaurant_id":%d,"customer_name":"Ana","customer_email":"a@b.c","customer_phone":"1","date":%q,"time":"25:99"}`, id, tomorrow),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid time: expected HH:MM",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := api.do(http.MethodPost, "/api/reservations", tc.body)
			require.Equal(t, tc.wantStatus, status)
			require.False(t, env.Success)
			require.Equal(t, tc.wantError, env.Error)
		})
	}
}

func TestReservationCaps(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	id := api.addRestaurant("Pasta Place", "Springfield")

	api.addReservation(id, tomorrow)
	api.addReservation(id, tomorrow)

	body := fmt.Sprintf(`{"restaurant_id":%d,"customer_name":"Ana","customer_email":"a@b.c","customer_phone":"1","date":%q}`, id, tomorrow)
	status, env := api.do(http.MethodPost, "/api/reservations", body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "restaurant has reached its reservation limit for this date", env.Error)
}

func TestCompleteAndCancelReservation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	restID := api.addRestaurant("Pasta Place", "Springfield")
	resID := api.addReservation(restID, tomorrow)

	status, env := api.do(http.MethodPut, fmt.Sprintf("/api/reservations/%d/complete", resID), "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "reservation marked as completed", env.Message)
	var got struct {
		Completed bool `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.True(t, got.Completed)

	status, env = api.do(http.MethodGet, "/api/reservations/pending", "")
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Empty(t, list)

	status, env = api.do(http.MethodDelete, fmt.Sprintf("/api/reservations/%d", resID), "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "reservation cancelled", env.Message)

	status, env = api.do(http.MethodDelete, fmt.Sprintf("/api/reservations/%d", resID), "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "reservation not found", env.Error)
}

func TestExpiredReservationEndpoints(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	restID := api.addRestaurant("Pasta Place", "Springfield")

	api.addReservation(restID, today)
	futureID := api.addReservation(restID, tomorrow)

	// Move the clock forward so today's reservation expires.
	api.admission.Now = func() time.Time { return testNow.AddDate(0, 0, 1) }

	status, env := api.do(http.MethodPut, "/api/reservations/expired/complete", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "1 expired reservations marked as completed", env.Message)
	var data struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, 1, data.Count)

	status, env = api.do(http.MethodDelete, "/api/reservations/completed", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "1 completed reservations deleted", env.Message)

	status, env = api.do(http.MethodDelete, "/api/reservations/expired", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "0 expired reservations deleted", env.Message)

	status, env = api.do(http.MethodGet, "/api/reservations", "")
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, futureID, list[0].ID)
}

func TestListReservationsByRestaurant(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	r1 := api.addRestaurant("Pasta Place", "Springfield")
	r2 := api.addRestaurant("Burger Barn", "Shelbyville")

	api.addReservation(r1, today)
	api.addReservation(r1, tomorrow)
	api.addReservation(r2, tomorrow)

	status, env := api.do(http.MethodGet, fmt.Sprintf("/api/reservations/restaurant/%d", r1), "")
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		RestaurantName string `json:"restaurant_name"`
		Date           string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	require.Equal(t, "Pasta Place", list[0].RestaurantName)

	status, env = api.do(http.MethodGet, fmt.Sprintf("/api/reservations/restaurant/%d?date=%s", r1, tomorrow), "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, tomorrow, list[0].Date)

	status, env = api.do(http.MethodGet, "/api/reservations/restaurant/999", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "restaurant not found", env.Error)
}

func TestListReservationsByDate(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	restID := api.addRestaurant("Pasta Place", "Springfield")

	api.addReservation(restID, today)
	api.addReservation(restID, tomorrow)

	status, env := api.do(http.MethodGet, "/api/reservations?date="+tomorrow, "")
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, tomorrow, list[0].Date)

	status, env = api.do(http.MethodGet, "/api/reservations?date=nope", "")
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid date format, expected YYYY-MM-DD", env.Error)
}

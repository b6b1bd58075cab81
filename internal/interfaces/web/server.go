package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
)

// Server is the JSON API over the catalog and the admission engine.
type Server struct {
	catalog   *usecases.CatalogService
	admission *usecases.AdmissionService
	log       *slog.Logger
	echo      *echo.Echo
}

func New(catalog *usecases.CatalogService, admission *usecases.AdmissionService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		catalog:   catalog,
		admission: admission,
		log:       log,
		echo:      echo.New(),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.CORS())
	s.echo.Use(s.requestLogger)

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/restaurants", s.listRestaurants)
	api.GET("/restaurants/filter", s.filterRestaurants)
	api.GET("/restaurants/:id", s.getRestaurant)
	api.POST("/restaurants", s.createRestaurant)
	api.PUT("/restaurants/:id", s.updateRestaurant)
	api.DELETE("/restaurants/:id", s.deleteRestaurant)

	api.GET("/reservations", s.listReservations)
	api.POST("/reservations", s.createReservation)
	api.GET("/reservations/pending", s.listPendingReservations)
	api.DELETE("/reservations/completed", s.purgeCompletedReservations)
	api.PUT("/reservations/expired/complete", s.reconcileExpiredReservations)
	api.DELETE("/reservations/expired", s.purgeExpiredReservations)
	api.GET("/reservations/restaurant/:id", s.listReservationsByRestaurant)
	api.PUT("/reservations/:id/complete", s.completeReservation)
	api.DELETE("/reservations/:id", s.cancelReservation)
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Info("request",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", c.Response().Status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
		return err
	}
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
	"github.com/breynerciro/restaurante-app/internal/interfaces/web"
)

func NewServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the reservation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			openCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
			defer cancel()
			restaurants, reservations, closeStore, err := openStores(openCtx, cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			catalog := &usecases.CatalogService{Restaurants: restaurants, Log: log}
			admission := &usecases.AdmissionService{
				Reservations: reservations,
				Restaurants:  restaurants,
				Caps:         cfg.Caps,
				Log:          log,
			}

			srv := web.New(catalog, admission, log)

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()
			log.Info("server started",
				slog.String("addr", cfg.HTTPAddr),
				slog.Int("per_restaurant_daily_cap", cfg.Caps.PerRestaurantDaily),
				slog.Int("global_daily_cap", cfg.Caps.GlobalDaily))

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

package cli

import (
	"context"
	"log/slog"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
	"github.com/breynerciro/restaurante-app/internal/infrastructure/config"
	"github.com/breynerciro/restaurante-app/internal/infrastructure/memory"
	"github.com/breynerciro/restaurante-app/internal/infrastructure/postgres"
)

// openStores selects the backing store: Postgres normally, the
// in-memory store under DEV_MODE=1. The returned func releases the
// store.
func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (usecases.RestaurantStore, usecases.ReservationStore, func(), error) {
	if cfg.DevMode {
		log.Warn("DEV_MODE=1: using in-memory store, data will not survive a restart")
		store := memory.New()
		return store.Restaurants(), store.Reservations(), func() {}, nil
	}

	store, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	return store.Restaurants(), store.Reservations(), store.Close, nil
}

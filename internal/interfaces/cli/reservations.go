package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/breynerciro/restaurante-app/internal/application/usecases"
)

// NewReservationsCmd groups the on-demand bulk lifecycle operations.
// There is no built-in scheduler; cron or an operator invokes these.
func NewReservationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "Bulk reservation maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reconcile-expired",
		Short: "Mark past-dated pending reservations as completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk("marked as completed", func(ctx context.Context, svc *usecases.AdmissionService) (int, error) {
				return svc.ReconcileExpired(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "purge-expired",
		Short: "Delete past-dated pending reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk("deleted", func(ctx context.Context, svc *usecases.AdmissionService) (int, error) {
				return svc.PurgeExpired(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "purge-completed",
		Short: "Delete completed reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk("deleted", func(ctx context.Context, svc *usecases.AdmissionService) (int, error) {
				return svc.PurgeCompleted(ctx)
			})
		},
	})
	return cmd
}

func runBulk(verb string, op func(ctx context.Context, svc *usecases.AdmissionService) (int, error)) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	restaurants, reservations, closeStore, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := &usecases.AdmissionService{
		Reservations: reservations,
		Restaurants:  restaurants,
		Caps:         cfg.Caps,
		Log:          log,
	}
	count, err := op(ctx, svc)
	if err != nil {
		return err
	}
	fmt.Printf("%d reservations %s\n", count, verb)
	return nil
}

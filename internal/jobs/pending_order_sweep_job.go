package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/application/usecases/queries"
	"ecommerce/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// PendingOrderSweepJob cancels Pending orders that outlived the payment
// window, returning their reserved stock to the catalog. Runs every minute.
type PendingOrderSweepJob struct {
	staleQuery    queries.GetStalePendingOrdersQueryHandler
	cancelHandler commands.CancelOrderCommandHandler
	ttl           time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewPendingOrderSweepJob creates a job cancelling Pending orders older
// than ttl.
func NewPendingOrderSweepJob(
	staleQuery queries.GetStalePendingOrdersQueryHandler,
	cancelHandler commands.CancelOrderCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *PendingOrderSweepJob {
	return &PendingOrderSweepJob{
		staleQuery:    staleQuery,
		cancelHandler: cancelHandler,
		ttl:           ttl,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "pending_order_sweep_job"),
	}
}

// Start begins the sweep job to run every minute.
func (j *PendingOrderSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.sweep(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *PendingOrderSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order sweep job stopped")
}

func (j *PendingOrderSweepJob) sweep(ctx context.Context) {
	query, err := queries.NewGetStalePendingOrdersQuery(time.Now().Add(-j.ttl))
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order sweep query invalid", "error", err)
		return
	}

	stale, err := j.staleQuery.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order sweep failed", "error", err)
		return
	}

	for _, expired := range stale {
		cmd, cmdErr := commands.NewCancelOrderCommand(expired.ID, expired.UserID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Pending order sweep cancel command invalid",
				"order_id", expired.ID.String(), "error", cmdErr)
			continue
		}

		if _, cancelErr := j.cancelHandler.Handle(ctx, cmd); cancelErr != nil {
			// Orders paid or cancelled between the query and the cancel
			// fail their status transition; that is not a sweep problem.
			if errors.Is(cancelErr, errs.ErrInvalidState) {
				continue
			}
			j.logger.ErrorContext(ctx, "Pending order sweep cancel failed",
				"order_id", expired.ID.String(), "error", cancelErr)
		} else {
			j.logger.InfoContext(ctx, "Expired pending order cancelled",
				"order_id", expired.ID.String())
		}
	}
}

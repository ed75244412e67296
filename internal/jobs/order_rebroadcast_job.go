package jobs

import (
	"context"
	"log/slog"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OrderBroadcaster re-announces one order to the contractors of its region.
type OrderBroadcaster interface {
	Broadcast(ctx context.Context, orderID kernel.UUID) error
}

// OrderRebroadcastJob periodically re-announces open orders that have been
// waiting for a contractor longer than staleAfter. Runs every ten minutes.
type OrderRebroadcastJob struct {
	orderRepo  ports.OrderRepository
	notifier   OrderBroadcaster
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOrderRebroadcastJob creates a new job for re-announcing stale orders.
func NewOrderRebroadcastJob(
	orderRepo ports.OrderRepository,
	notifier OrderBroadcaster,
	staleAfter time.Duration,
	logger *slog.Logger,
) *OrderRebroadcastJob {
	return &OrderRebroadcastJob{
		orderRepo:  orderRepo,
		notifier:   notifier,
		staleAfter: staleAfter,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "order_rebroadcast_job"),
	}
}

// Start begins the rebroadcast job to run every ten minutes.
func (j *OrderRebroadcastJob) Start() error {
	_, err := j.cron.AddFunc("0 */10 * * * *", func() {
		ctx := context.Background()
		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order rebroadcast sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order rebroadcast job started (running every ten minutes)")
	return nil
}

// Stop stops the rebroadcast job.
func (j *OrderRebroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order rebroadcast job stopped")
}

// RunOnce performs a single sweep: every open order created before
// now-staleAfter is re-announced. A failure for one order is logged and
// does not stop the sweep.
func (j *OrderRebroadcastJob) RunOnce(ctx context.Context) error {
	stale, err := j.orderRepo.GetAllCreatedBefore(ctx, time.Now().Add(-j.staleAfter))
	if err != nil {
		return err
	}

	for _, aggregate := range stale {
		if err := j.notifier.Broadcast(ctx, aggregate.ID()); err != nil {
			j.logger.ErrorContext(ctx, "Order rebroadcast failed",
				"order_id", aggregate.ID().String(), "error", err)
		}
	}

	return nil
}

package relay

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/util"
)

type EventRepository interface {
	ListUnrelayedOrders(ctx context.Context, limit int) ([]*domain.Order, error)
	CreateEvent(ctx context.Context, event *domain.OrderEvent) error
}

// Relay copies finalized order records into the order event log, one
// event per order. It stands in for a change feed on the order store:
// instead of a stream subscription it polls for orders that have no
// event row yet, so a missed tick is caught up by the next one.
type Relay struct {
	events       EventRepository
	pollInterval time.Duration
	batchLimit   int
	logger       *zap.Logger
	now          func() time.Time
}

func NewRelay(events EventRepository, pollInterval time.Duration, batchLimit int, l *zap.Logger) *Relay {
	return &Relay{
		events:       events,
		pollInterval: pollInterval,
		batchLimit:   batchLimit,
		logger:       l,
		now:          time.Now,
	}
}

func (r *Relay) Run(ctx context.Context) {
	r.logger.Info("Starting order event relay", zap.Duration("poll_interval", r.pollInterval))
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Order event relay stopped")
			return
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil {
				r.logger.Error("Relay pass failed", zap.Error(err))
			}
		}
	}
}

// RelayOnce performs a single relay pass and returns the number of
// events written.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	orders, err := r.events.ListUnrelayedOrders(ctx, r.batchLimit)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		r.logger.Debug("No orders to relay")
		return 0, nil
	}

	relayed := 0
	for _, order := range orders {
		event := &domain.OrderEvent{
			ID:        util.GenerateUUID(),
			OrderID:   order.ID,
			Status:    order.Status,
			EventDate: order.OrderDate,
			CreatedAt: r.now().UTC(),
		}
		if err := r.events.CreateEvent(ctx, event); err != nil {
			r.logger.Error("Failed to relay order event",
				zap.String("order_id", order.ID),
				zap.Error(err))
			continue
		}
		r.logger.Debug("Order event relayed",
			zap.String("event_id", event.ID),
			zap.String("order_id", order.ID))
		relayed++
	}

	r.logger.Info("Relay pass completed", zap.Int("relayed", relayed), zap.Int("candidates", len(orders)))
	return relayed, nil
}

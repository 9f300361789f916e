package event_repo

import (
	"context"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
)

// EventRepository owns the order event log fed by the change-feed relay
// and scanned by the analytics reporter.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *domain.OrderEvent) error
	// ListUnrelayedOrders returns finalized orders that have no event
	// row yet, oldest first, up to limit.
	ListUnrelayedOrders(ctx context.Context, limit int) ([]*domain.Order, error)
	GetAllEvents(ctx context.Context) ([]*domain.OrderEvent, error)
}

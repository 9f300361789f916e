package order_repo

import (
	"context"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
)

// OrderRepository is the Order Store boundary. The store's key semantics
// (create-if-absent on the order id) are the idempotency gate for the
// whole pipeline.
type OrderRepository interface {
	// CreateIfAbsent inserts the order and reports whether a row was
	// actually created. A false return with nil error means an order
	// with the same id already exists; the caller is expected to load
	// it and resume.
	CreateIfAbsent(ctx context.Context, order *domain.Order) (bool, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	// SetStockResult persists the outcome of the stock check and
	// advances the fulfillment state to stock_checked.
	SetStockResult(ctx context.Context, id string, status domain.OrderStatus, available int) error
	SetState(ctx context.Context, id string, state domain.FulfillmentState) error
}

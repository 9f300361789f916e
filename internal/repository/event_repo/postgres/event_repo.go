package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/repository/event_repo"
)

type pgEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewEventRepository(db *sql.DB, l *zap.Logger) event_repo.EventRepository {
	return &pgEventRepository{db: db, logger: l}
}

func (r *pgEventRepository) CreateEvent(ctx context.Context, event *domain.OrderEvent) error {
	query := `INSERT INTO order_events (id, order_id, status, event_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, event.ID, event.OrderID, event.Status, event.EventDate, event.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create order event", zap.String("order_id", event.OrderID), zap.Error(err))
		return fmt.Errorf("failed to create order event for %s: %w", event.OrderID, err)
	}
	r.logger.Debug("Order event created", zap.String("event_id", event.ID), zap.String("order_id", event.OrderID))
	return nil
}

func (r *pgEventRepository) ListUnrelayedOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	query := `SELECT o.id, o.name, o.firstname, o.email, o.address, o.product, o.quantity, o.price, o.available_quantity, o.order_date, o.status, o.state
		FROM orders o
		LEFT JOIN order_events e ON e.order_id = o.id
		WHERE e.order_id IS NULL AND o.status IN ($1, $2)
		ORDER BY o.order_date ASC
		LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusValid, domain.OrderStatusInvalid, limit)
	if err != nil {
		r.logger.Error("Failed to query unrelayed orders", zap.Error(err))
		return nil, fmt.Errorf("failed to list unrelayed orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(
			&order.ID, &order.Name, &order.Firstname, &order.Email, &order.Address,
			&order.Product, &order.Quantity, &order.Price, &order.AvailableQty,
			&order.OrderDate, &order.Status, &order.State); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return orders, nil
}

func (r *pgEventRepository) GetAllEvents(ctx context.Context) ([]*domain.OrderEvent, error) {
	query := `SELECT id, order_id, status, event_date, created_at FROM order_events ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query order events", zap.Error(err))
		return nil, fmt.Errorf("failed to get order events: %w", err)
	}
	defer rows.Close()

	var events []*domain.OrderEvent
	for rows.Next() {
		event := &domain.OrderEvent{}
		if err := rows.Scan(&event.ID, &event.OrderID, &event.Status, &event.EventDate, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return events, nil
}

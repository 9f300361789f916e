package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/repository/order_repo"
)

type pgOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewOrderRepository(db *sql.DB, l *zap.Logger) order_repo.OrderRepository {
	return &pgOrderRepository{db: db, logger: l}
}

func (r *pgOrderRepository) CreateIfAbsent(ctx context.Context, order *domain.Order) (bool, error) {
	query := `INSERT INTO orders (id, name, firstname, email, address, product, quantity, price, available_quantity, order_date, status, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		order.ID, order.Name, order.Firstname, order.Email, order.Address,
		order.Product, order.Quantity, order.Price, order.AvailableQty,
		order.OrderDate, order.Status, order.State)
	if err != nil {
		r.logger.Error("Failed to create order", zap.String("order_id", order.ID), zap.Error(err))
		return false, fmt.Errorf("failed to create order %s: %w", order.ID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check create result for order %s: %w", order.ID, err)
	}
	if rowsAffected == 0 {
		r.logger.Debug("Order already exists, create skipped", zap.String("order_id", order.ID))
		return false, nil
	}
	r.logger.Debug("Order created", zap.String("order_id", order.ID))
	return true, nil
}

func (r *pgOrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}
	query := `SELECT id, name, firstname, email, address, product, quantity, price, available_quantity, order_date, status, state
		FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.Name, &order.Firstname, &order.Email, &order.Address,
		&order.Product, &order.Quantity, &order.Price, &order.AvailableQty,
		&order.OrderDate, &order.Status, &order.State)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to get order by ID", zap.String("order_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return order, nil
}

func (r *pgOrderRepository) SetStockResult(ctx context.Context, id string, status domain.OrderStatus, available int) error {
	query := `UPDATE orders SET status = $2, available_quantity = $3, state = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, available, domain.StateStockChecked)
	if err != nil {
		r.logger.Error("Failed to set stock result", zap.String("order_id", id), zap.Error(err))
		return fmt.Errorf("failed to set stock result for order %s: %w", id, err)
	}
	return checkOneRow(res, id)
}

func (r *pgOrderRepository) SetState(ctx context.Context, id string, state domain.FulfillmentState) error {
	query := `UPDATE orders SET state = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, state)
	if err != nil {
		r.logger.Error("Failed to set order state", zap.String("order_id", id), zap.String("state", string(state)), zap.Error(err))
		return fmt.Errorf("failed to set state for order %s: %w", id, err)
	}
	return checkOneRow(res, id)
}

func checkOneRow(res sql.Result, id string) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result for order %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

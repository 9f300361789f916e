package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/repository/archive_repo"
)

type pgArchiveRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewArchiveRepository(db *sql.DB, l *zap.Logger) archive_repo.ArchiveRepository {
	return &pgArchiveRepository{db: db, logger: l}
}

func (r *pgArchiveRepository) CreateIfAbsent(ctx context.Context, rec *domain.ArchiveRecord) error {
	query := `INSERT INTO archive_records (order_id, archived_at, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, rec.OrderID, rec.ArchivedAt, rec.Status)
	if err != nil {
		r.logger.Error("Failed to archive order", zap.String("order_id", rec.OrderID), zap.Error(err))
		return fmt.Errorf("failed to archive order %s: %w", rec.OrderID, err)
	}
	r.logger.Debug("Order archived", zap.String("order_id", rec.OrderID))
	return nil
}

func (r *pgArchiveRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.ArchiveRecord, error) {
	rec := &domain.ArchiveRecord{}
	query := `SELECT order_id, archived_at, status FROM archive_records WHERE order_id = $1`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&rec.OrderID, &rec.ArchivedAt, &rec.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to get archive record", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("failed to get archive record for order %s: %w", orderID, err)
	}
	return rec, nil
}

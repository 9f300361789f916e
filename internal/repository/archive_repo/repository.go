package archive_repo

import (
	"context"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
)

// ArchiveRepository is the Archive Store boundary. Records are created
// once per order and never mutated.
type ArchiveRepository interface {
	CreateIfAbsent(ctx context.Context, rec *domain.ArchiveRecord) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.ArchiveRecord, error)
}

package domain

import "time"

// ArchiveRecord is the lightweight audit row written next to each order.
// It is created once and never mutated.
type ArchiveRecord struct {
	OrderID    string
	ArchivedAt time.Time
	Status     OrderStatus
}

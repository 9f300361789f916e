package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
)

type fakeEventRepo struct {
	orders     []*domain.Order
	events     []*domain.OrderEvent
	failOrders map[string]error
}

func (r *fakeEventRepo) ListUnrelayedOrders(_ context.Context, limit int) ([]*domain.Order, error) {
	relayed := make(map[string]bool)
	for _, e := range r.events {
		relayed[e.OrderID] = true
	}
	var out []*domain.Order
	for _, o := range r.orders {
		if relayed[o.ID] || !o.Finalized() {
			continue
		}
		out = append(out, o)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeEventRepo) CreateEvent(_ context.Context, event *domain.OrderEvent) error {
	if err, ok := r.failOrders[event.OrderID]; ok {
		return err
	}
	r.events = append(r.events, event)
	return nil
}

func finalizedOrder(id string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{ID: id, Status: status, OrderDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
}

func TestRelayOnce_CopiesFinalizedOrders(t *testing.T) {
	repo := &fakeEventRepo{
		orders: []*domain.Order{
			finalizedOrder("a", domain.OrderStatusValid),
			finalizedOrder("b", domain.OrderStatusInvalid),
			{ID: "c", Status: domain.OrderStatusPending},
		},
	}
	r := NewRelay(repo, time.Second, 100, zap.NewNop())

	n, err := r.RelayOnce(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d (%d stored)", n, len(repo.events))
	}
	if repo.events[0].OrderID != "a" || repo.events[0].Status != domain.OrderStatusValid {
		t.Fatalf("unexpected first event: %+v", repo.events[0])
	}
	if !repo.events[0].EventDate.Equal(repo.orders[0].OrderDate) {
		t.Fatalf("event date should carry the order date")
	}
}

func TestRelayOnce_IsIdempotentAcrossPasses(t *testing.T) {
	repo := &fakeEventRepo{orders: []*domain.Order{finalizedOrder("a", domain.OrderStatusValid)}}
	r := NewRelay(repo, time.Second, 100, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := r.RelayOnce(context.Background()); err != nil {
			t.Fatalf("pass %d: %v", i+1, err)
		}
	}
	if len(repo.events) != 1 {
		t.Fatalf("order must be relayed exactly once, got %d events", len(repo.events))
	}
}

func TestRelayOnce_ContinuesPastFailures(t *testing.T) {
	repo := &fakeEventRepo{
		orders: []*domain.Order{
			finalizedOrder("a", domain.OrderStatusValid),
			finalizedOrder("b", domain.OrderStatusValid),
		},
		failOrders: map[string]error{"a": errors.New("insert failed")},
	}
	r := NewRelay(repo, time.Second, 100, zap.NewNop())

	n, err := r.RelayOnce(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || len(repo.events) != 1 || repo.events[0].OrderID != "b" {
		t.Fatalf("sibling should still be relayed: n=%d events=%+v", n, repo.events)
	}
}

package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/artifact"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
)

type fakeEventSource struct {
	events []*domain.OrderEvent
	err    error
}

func (s *fakeEventSource) GetAllEvents(_ context.Context) ([]*domain.OrderEvent, error) {
	return s.events, s.err
}

func TestGenerate_WritesSummary(t *testing.T) {
	source := &fakeEventSource{events: []*domain.OrderEvent{
		{ID: "e1", OrderID: "a", Status: domain.OrderStatusValid},
		{ID: "e2", OrderID: "b", Status: domain.OrderStatusValid},
		{ID: "e3", OrderID: "c", Status: domain.OrderStatusInvalid},
	}}
	store := artifact.NewInMemoryStore()
	g := NewGenerator(source, store, zap.NewNop())
	g.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	key, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "reports/analytics-report-2025-06-01.json" {
		t.Fatalf("unexpected report key: %s", key)
	}

	data, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("report not stored: %v", err)
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if summary.TotalEvents != 3 {
		t.Fatalf("totalEvents = %d, want 3", summary.TotalEvents)
	}
	if summary.CountsByStatus["valid"] != 2 || summary.CountsByStatus["invalid"] != 1 {
		t.Fatalf("unexpected status counts: %+v", summary.CountsByStatus)
	}
	if len(summary.Events) != 3 || summary.Events[0].ID != "e1" {
		t.Fatalf("events should be embedded in scan order: %+v", summary.Events)
	}
}

func TestGenerate_EmptyLog(t *testing.T) {
	store := artifact.NewInMemoryStore()
	g := NewGenerator(&fakeEventSource{}, store, zap.NewNop())

	key, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("report not stored: %v", err)
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if summary.TotalEvents != 0 || len(summary.Events) != 0 {
		t.Fatalf("expected an empty summary, got %+v", summary)
	}
}

func TestGenerate_ScanFailure(t *testing.T) {
	store := artifact.NewInMemoryStore()
	g := NewGenerator(&fakeEventSource{err: errors.New("db down")}, store, zap.NewNop())

	if _, err := g.Generate(context.Background()); err == nil {
		t.Fatalf("expected an error when the event scan fails")
	}
	keys, _ := store.List(context.Background(), "reports/")
	if len(keys) != 0 {
		t.Fatalf("no report should be written on scan failure, got %v", keys)
	}
}

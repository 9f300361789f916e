package artifact

import (
	"context"
	"errors"
	"testing"
)

func TestBadgerStore_PutGetList(t *testing.T) {
	s, err := NewBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Put(ctx, "invoices/a.json", []byte(`{"orderId":"a"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "reports/r.json", []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, err := s.Get(ctx, "invoices/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"orderId":"a"}` {
		t.Fatalf("unexpected data: %s", data)
	}

	if _, err := s.Get(ctx, "invoices/missing.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	keys, err := s.List(ctx, "invoices/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 1 || keys[0] != "invoices/a.json" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

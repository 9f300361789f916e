package inventory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zap.NewNop()), srv
}

func TestCheck_SufficientAndInsufficientStock(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"Widget","quantity":10},{"name":"Gadget","quantity":0}]`))
	})

	res, err := c.Check(context.Background(), "Widget", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsValid || res.Available != 10 {
		t.Fatalf("quantity equal to stock should be valid: %+v", res)
	}

	res, err = c.Check(context.Background(), "Widget", 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsValid {
		t.Fatalf("quantity above stock should be invalid: %+v", res)
	}
	if res.Available != 10 {
		t.Fatalf("available should report catalog stock: %+v", res)
	}
}

func TestCheck_UnknownProduct(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"Widget","quantity":10}]`))
	})

	res, err := c.Check(context.Background(), "DoesNotExist", 1)
	if err != nil {
		t.Fatalf("unknown product is not an error: %v", err)
	}
	if res.IsValid || res.Available != 0 {
		t.Fatalf("unknown product should be invalid with zero stock: %+v", res)
	}
}

func TestCheck_MalformedCatalog(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	})

	_, err := c.Check(context.Background(), "Widget", 1)
	if !errors.Is(err, ErrOracleMalformed) {
		t.Fatalf("expected ErrOracleMalformed, got %v", err)
	}
}

func TestCheck_OracleUnavailable(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.Check(context.Background(), "Widget", 1)
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
}

func TestCheck_ErrorStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Check(context.Background(), "Widget", 1)
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
}

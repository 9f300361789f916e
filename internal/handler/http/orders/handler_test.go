package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/app/fulfillment"
)

type fakeProducer struct {
	topic string
	key   string
	value []byte
	err   error
}

func (p *fakeProducer) Produce(_ context.Context, topic string, key, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.topic = topic
	p.key = string(key)
	p.value = value
	return nil
}

func (p *fakeProducer) Close() error { return nil }

const validBody = `{"name":"Doe","firstname":"Jane","email":"j@x.com","address":"1 Rue X","product":"Widget","quantity":5,"price":9.99}`

func TestSubmitOrder_Accepted(t *testing.T) {
	producer := &fakeProducer{}
	h := NewIntakeHandler(producer, "order_intake", zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(validBody))
	req.Header.Set(IdempotencyHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.SubmitOrder(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}

	var resp SubmitOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.RequestID != "abc-123" || resp.Status != "processing" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if producer.topic != "order_intake" || producer.key != "abc-123" {
		t.Fatalf("unexpected produce call: topic=%s key=%s", producer.topic, producer.key)
	}
	var msg fulfillment.IntakeMessage
	if err := json.Unmarshal(producer.value, &msg); err != nil {
		t.Fatalf("enqueued message not valid JSON: %v", err)
	}
	if msg.RequestID != "abc-123" || msg.Product != "Widget" || msg.Quantity != 5 {
		t.Fatalf("unexpected intake message: %+v", msg)
	}
	if msg.EnqueuedAt.IsZero() {
		t.Fatalf("enqueuedAt should be set")
	}
}

func TestSubmitOrder_MissingIdempotencyKey(t *testing.T) {
	h := NewIntakeHandler(&fakeProducer{}, "order_intake", zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	h.SubmitOrder(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitOrder_InvalidSubmission(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Doe","firstname":"Jane","address":"1 Rue X","product":"Widget","quantity":5,"price":9.99}`},
		{"zero quantity", `{"name":"Doe","firstname":"Jane","email":"j@x.com","address":"1 Rue X","product":"Widget","quantity":0,"price":9.99}`},
		{"non-numeric price", `{"name":"Doe","firstname":"Jane","email":"j@x.com","address":"1 Rue X","product":"Widget","quantity":5,"price":"9.99"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			producer := &fakeProducer{}
			h := NewIntakeHandler(producer, "order_intake", zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tc.body))
			req.Header.Set(IdempotencyHeader, "abc-123")
			rec := httptest.NewRecorder()
			h.SubmitOrder(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if producer.value != nil {
				t.Fatalf("nothing should be enqueued for an invalid submission")
			}
		})
	}
}

func TestSubmitOrder_QueueUnavailable(t *testing.T) {
	h := NewIntakeHandler(&fakeProducer{err: context.DeadlineExceeded}, "order_intake", zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(validBody))
	req.Header.Set(IdempotencyHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.SubmitOrder(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

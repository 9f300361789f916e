package fulfillment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrMalformedMessage = errors.New("malformed intake message")

// Envelope is one opaque queued message: the transport identifier plus
// the raw body. The transport id identifies the message in the
// FailureManifest when no order id could be derived from the body.
type Envelope struct {
	ID   string
	Body []byte
}

// IntakeMessage is the unit of work read from the queue. RequestID is
// the caller-supplied idempotency token; when absent, the pipeline
// generates one and duplicate detection is impossible for that message.
type IntakeMessage struct {
	RequestID  string    `json:"requestId"`
	Name       string    `json:"name"`
	Firstname  string    `json:"firstname"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	Product    string    `json:"product"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

func ParseIntakeMessage(body []byte) (*IntakeMessage, error) {
	var msg IntakeMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (m *IntakeMessage) Validate() error {
	if m.Name == "" || m.Firstname == "" || m.Email == "" || m.Address == "" || m.Product == "" {
		return fmt.Errorf("%w: missing required fields", ErrMalformedMessage)
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrMalformedMessage)
	}
	if m.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrMalformedMessage)
	}
	return nil
}

// Outcome is the per-message processing result consumed by the Reporter.
type Outcome struct {
	EnvelopeID    string
	OrderID       string
	Success       bool
	FailureReason string
}

// FailureManifest is the ordered set of identifiers the queue must
// redeliver; everything else in the batch is considered handled.
type FailureManifest []string

// InvoiceKey is the artifact store key for an order's invoice document.
func InvoiceKey(orderID string) string {
	return "invoices/" + orderID + ".json"
}

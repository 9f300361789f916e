package domain

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	// OrderStatusPending is only ever observed between record creation and
	// the stock check; finalized orders are valid or invalid.
	OrderStatusPending OrderStatus = "pending"
	OrderStatusValid   OrderStatus = "valid"
	OrderStatusInvalid OrderStatus = "invalid"
)

// FulfillmentState tracks how far the pipeline has progressed for an
// order, so a redelivered message resumes at the first incomplete step
// instead of redoing completed side effects.
type FulfillmentState string

const (
	StateCreated      FulfillmentState = "created"
	StateStockChecked FulfillmentState = "stock_checked"
	StatePersisted    FulfillmentState = "persisted"
	StateInvoiced     FulfillmentState = "invoiced"
	StateNotified     FulfillmentState = "notified"
	StateDone         FulfillmentState = "done"
)

var ErrInvalidOrderData = errors.New("invalid order data")

// Order is the authoritative record for a single customer order, keyed
// by the idempotency token of the submission that produced it.
type Order struct {
	ID           string
	Name         string
	Firstname    string
	Email        string
	Address      string
	Product      string
	Quantity     int
	Price        float64
	AvailableQty int
	OrderDate    time.Time
	Status       OrderStatus
	State        FulfillmentState
}

func NewOrder(id, name, firstname, email, address, product string, quantity int, price float64, orderDate time.Time) (*Order, error) {
	if id == "" || name == "" || firstname == "" || email == "" || address == "" || product == "" {
		return nil, ErrInvalidOrderData
	}
	if quantity <= 0 || price < 0 {
		return nil, ErrInvalidOrderData
	}
	return &Order{
		ID:        id,
		Name:      name,
		Firstname: firstname,
		Email:     email,
		Address:   address,
		Product:   product,
		Quantity:  quantity,
		Price:     price,
		OrderDate: orderDate,
		Status:    OrderStatusPending,
		State:     StateCreated,
	}, nil
}

// ApplyStockResult finalizes the order status from an inventory check.
func (o *Order) ApplyStockResult(available int) {
	o.AvailableQty = available
	if available >= o.Quantity {
		o.Status = OrderStatusValid
	} else {
		o.Status = OrderStatusInvalid
	}
}

func (o *Order) Finalized() bool {
	return o.Status == OrderStatusValid || o.Status == OrderStatusInvalid
}

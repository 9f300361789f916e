package domain

import "time"

// DeliveryLeadTime is the fixed lead time added to the order date to
// compute the estimated delivery date on invoices.
const DeliveryLeadTime = 3 * 24 * time.Hour

// Invoice is the document stored for every valid order. It snapshots the
// order at fulfillment time and is immutable once written.
type Invoice struct {
	OrderID               string      `json:"orderId"`
	Name                  string      `json:"name"`
	Firstname             string      `json:"firstname"`
	Email                 string      `json:"email"`
	Address               string      `json:"address"`
	Product               string      `json:"product"`
	Quantity              int         `json:"quantity"`
	Price                 float64     `json:"price"`
	OrderDate             time.Time   `json:"orderDate"`
	EstimatedDeliveryDate time.Time   `json:"estimatedDeliveryDate"`
	Status                OrderStatus `json:"status"`
}

func NewInvoice(o *Order) *Invoice {
	return &Invoice{
		OrderID:               o.ID,
		Name:                  o.Name,
		Firstname:             o.Firstname,
		Email:                 o.Email,
		Address:               o.Address,
		Product:               o.Product,
		Quantity:              o.Quantity,
		Price:                 o.Price,
		OrderDate:             o.OrderDate,
		EstimatedDeliveryDate: o.OrderDate.Add(DeliveryLeadTime),
		Status:                o.Status,
	}
}

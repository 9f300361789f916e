package notifier

import (
	"fmt"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
)

// Subject builds the mail subject for an order. The same subject is
// used for confirmations and rejections.
func Subject(orderID string) string {
	return fmt.Sprintf("Order confirmation #%s", orderID)
}

// ConfirmationBody builds the mail body for a valid order.
func ConfirmationBody(o *domain.Order) string {
	return fmt.Sprintf("Thank you %s %s for your order #%s :\nProduct: %s\nQuantity: %d\nTotal price: %.2f €\nStatus: %s",
		o.Firstname, o.Name, o.ID, o.Product, o.Quantity, o.Price, o.Status)
}

// RejectionBody builds the mail body for an order rejected at stock
// validation, stating the shortfall between requested and available.
func RejectionBody(o *domain.Order) string {
	return fmt.Sprintf("Sorry %s %s, your order #%s for product '%s' could not be processed because the requested quantity (%d) exceeds the available stock (%d).\nPlease place a new order with a quantity less than or equal to %d.",
		o.Firstname, o.Name, o.ID, o.Product, o.Quantity, o.AvailableQty, o.AvailableQty)
}

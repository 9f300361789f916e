package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
)

func testOrder() *domain.Order {
	o, _ := domain.NewOrder("abc-123", "Doe", "Jane", "j@x.com", "1 Rue X", "Widget", 5, 9.99, time.Now())
	return o
}

func TestConfirmationBody(t *testing.T) {
	o := testOrder()
	o.ApplyStockResult(20)

	body := ConfirmationBody(o)
	for _, want := range []string{"Jane Doe", "#abc-123", "Widget", "Quantity: 5", "9.99", "valid"} {
		if !strings.Contains(body, want) {
			t.Fatalf("confirmation body missing %q:\n%s", want, body)
		}
	}
}

func TestRejectionBody_StatesShortfall(t *testing.T) {
	o := testOrder()
	o.Quantity = 11
	o.ApplyStockResult(10)

	body := RejectionBody(o)
	if !strings.Contains(body, "requested quantity (11)") {
		t.Fatalf("rejection body should cite requested quantity:\n%s", body)
	}
	if !strings.Contains(body, "available stock (10)") {
		t.Fatalf("rejection body should cite available stock:\n%s", body)
	}
}

func TestSubject(t *testing.T) {
	if got := Subject("abc-123"); got != "Order confirmation #abc-123" {
		t.Fatalf("unexpected subject: %s", got)
	}
}

package notifications

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ManualOrderLine is one cart row rendered into the WhatsApp message.
type ManualOrderLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// ManualOrder carries everything needed to compose the fallback order message
// a customer sends over WhatsApp instead of checking out in-app.
type ManualOrder struct {
	Lines           []ManualOrderLine
	Total           decimal.Decimal
	DeliveryAddress string
	EstateOrHotel   string
	PhoneNumber     string
}

// BuildManualOrderMessage renders the plain-text order summary. Layout is
// stable because store staff parse these messages by eye.
func BuildManualOrderMessage(order ManualOrder) string {
	var b strings.Builder
	b.WriteString("Hello! I would like to place an order:\n\n")
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "%s x%d - ₦%s\n", line.ProductName, line.Quantity,
			line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: ₦%s\n", order.Total.StringFixed(2))
	if order.DeliveryAddress != "" {
		fmt.Fprintf(&b, "Delivery address: %s\n", order.DeliveryAddress)
	}
	if order.EstateOrHotel != "" {
		fmt.Fprintf(&b, "Estate/Hotel: %s\n", order.EstateOrHotel)
	}
	if order.PhoneNumber != "" {
		fmt.Fprintf(&b, "Phone: %s\n", order.PhoneNumber)
	}
	return b.String()
}

// BuildWhatsAppLink returns a wa.me deep link that opens a chat with the
// store number and the rendered message pre-filled.
func BuildWhatsAppLink(storeNumber string, order ManualOrder) string {
	message := BuildManualOrderMessage(order)
	return fmt.Sprintf("https://wa.me/%s?text=%s", storeNumber, url.QueryEscape(message))
}

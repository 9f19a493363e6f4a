package notifications

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleOrder() ManualOrder {
	return ManualOrder{
		Lines: []ManualOrderLine{
			{ProductName: "Rice 5kg", Quantity: 2, UnitPrice: decimal.NewFromInt(1000)},
			{ProductName: "Palm Oil 1L", Quantity: 1, UnitPrice: decimal.NewFromInt(500)},
		},
		Total:           decimal.NewFromInt(2500),
		DeliveryAddress: "Block 4, Flat 2",
		EstateOrHotel:   "FUTA Estate",
		PhoneNumber:     "+2348012345678",
	}
}

func TestBuildManualOrderMessage(t *testing.T) {
	msg := BuildManualOrderMessage(sampleOrder())

	for _, want := range []string{
		"Rice 5kg x2 - \u20a62000.00",
		"Palm Oil 1L x1 - \u20a6500.00",
		"Total: \u20a62500.00",
		"Delivery address: Block 4, Flat 2",
		"Estate/Hotel: FUTA Estate",
		"Phone: +2348012345678",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildManualOrderMessageOmitsEmptyFields(t *testing.T) {
	order := sampleOrder()
	order.DeliveryAddress = ""
	order.PhoneNumber = ""

	msg := BuildManualOrderMessage(order)
	if strings.Contains(msg, "Delivery address:") {
		t.Fatalf("empty address should be omitted:\n%s", msg)
	}
	if strings.Contains(msg, "Phone:") {
		t.Fatalf("empty phone should be omitted:\n%s", msg)
	}
}

func TestBuildWhatsAppLink(t *testing.T) {
	link := BuildWhatsAppLink("2348000000000", sampleOrder())

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if parsed.Host != "wa.me" {
		t.Fatalf("unexpected host %q", parsed.Host)
	}
	if parsed.Path != "/2348000000000" {
		t.Fatalf("unexpected path %q", parsed.Path)
	}

	text := parsed.Query().Get("text")
	if !strings.Contains(text, "Rice 5kg x2") {
		t.Fatalf("query text missing items: %q", text)
	}
	if strings.Contains(link, " ") {
		t.Fatal("link must be fully escaped")
	}
}

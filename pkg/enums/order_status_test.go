package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusOutForDelivery},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusOutForDelivery, OrderStatusDelivered},
		{OrderStatusOutForDelivery, OrderStatusCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusOutForDelivery},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusConfirmed, OrderStatusDelivered},
		{OrderStatusConfirmed, OrderStatusPending},
		{OrderStatusOutForDelivery, OrderStatusConfirmed},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusConfirmed},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusPending, OrderStatusPending},
	}
	for _, tc := range denied {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled are terminal")
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusOutForDelivery} {
		if s.IsTerminal() {
			t.Fatalf("%s is not terminal", s)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	parsed, err := ParseOrderStatus("out_for_delivery")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != OrderStatusOutForDelivery {
		t.Fatalf("unexpected status %s", parsed)
	}

	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("unknown status must not parse")
	}
}

package services

import (
	"errors"
	"testing"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

func TestCheckTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.OrderStatusPendingPayment, models.OrderStatusPaid},
		{models.OrderStatusPaid, models.OrderStatusProcessing},
		{models.OrderStatusPaid, models.OrderStatusCancelled},
		{models.OrderStatusProcessing, models.OrderStatusShipped},
		{models.OrderStatusProcessing, models.OrderStatusCancelled},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}
	for _, tt := range allowed {
		if err := CheckTransition(tt.from, tt.to); err != nil {
			t.Fatalf("%s -> %s should be allowed, got %v", tt.from, tt.to, err)
		}
	}

	denied := []struct{ from, to string }{
		{models.OrderStatusPaid, models.OrderStatusShipped},
		{models.OrderStatusPaid, models.OrderStatusDelivered},
		{models.OrderStatusShipped, models.OrderStatusCancelled},
		{models.OrderStatusDelivered, models.OrderStatusProcessing},
		{models.OrderStatusDelivered, models.OrderStatusCancelled},
		{models.OrderStatusCancelled, models.OrderStatusPaid},
		{models.OrderStatusCancelled, models.OrderStatusProcessing},
	}
	for _, tt := range denied {
		err := CheckTransition(tt.from, tt.to)
		if err == nil {
			t.Fatalf("%s -> %s should be rejected", tt.from, tt.to)
		}
		var transitionErr *InvalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("%s -> %s: error type %T, want *InvalidTransitionError", tt.from, tt.to, err)
		}
		if transitionErr.From != tt.from || transitionErr.To != tt.to {
			t.Fatalf("error reports %s -> %s, want %s -> %s", transitionErr.From, transitionErr.To, tt.from, tt.to)
		}
	}
}

func TestIsOrderStatus(t *testing.T) {
	for _, s := range []string{
		models.OrderStatusPendingPayment, models.OrderStatusPaid, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled,
	} {
		if !IsOrderStatus(s) {
			t.Fatalf("%s should be a known status", s)
		}
	}
	if IsOrderStatus("REFUNDED") {
		t.Fatal("REFUNDED should be unknown")
	}
}

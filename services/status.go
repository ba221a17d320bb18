package services

import "github.com/Devprashant05/Paanshala-sub000/models"

// statusTransitions is the fixed fulfillment table. DELIVERED and
// CANCELLED have no outgoing transitions.
var statusTransitions = map[string][]string{
	models.OrderStatusPendingPayment: {models.OrderStatusPaid},
	models.OrderStatusPaid:           {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing:     {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:        {models.OrderStatusDelivered},
	models.OrderStatusDelivered:      {},
	models.OrderStatusCancelled:      {},
}

// CheckTransition returns nil when the change from -> to is allowed,
// otherwise an *InvalidTransitionError naming the attempted pair.
func CheckTransition(from, to string) error {
	for _, next := range statusTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}

// IsOrderStatus reports whether s is one of the known statuses.
func IsOrderStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

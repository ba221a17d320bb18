package services

import "github.com/Devprashant05/Paanshala-sub000/models"

// Subtotal sums the line totals of the cart.
func Subtotal(items []models.CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.TotalPrice
	}
	return subtotal
}

// GrandTotal is subtotal minus discount, floored at zero.
func GrandTotal(subtotal, discount float64) float64 {
	total := subtotal - discount
	if total < 0 {
		return 0
	}
	return total
}

// Reprice recomputes the cart's derived fields in place from its items
// and applied coupon.
func Reprice(cart *models.Cart) {
	cart.Subtotal = Subtotal(cart.Items)
	cart.Discount = 0
	if cart.Coupon != nil {
		cart.Discount = cart.Coupon.Discount
	}
	cart.Total = GrandTotal(cart.Subtotal, cart.Discount)
}

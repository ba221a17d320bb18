package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart                 = errors.New("cart is empty")
	ErrInvalidAmount             = errors.New("cart total must be greater than zero")
	ErrInvalidAddress            = errors.New("address not found")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrOrderNotFound             = errors.New("order not found")

	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponInactive     = errors.New("coupon is not active")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponMinCartValue = errors.New("cart value below coupon minimum")
	ErrCouponLimitReached = errors.New("coupon usage limit reached")
)

// InvalidTransitionError reports a status change the transition table
// does not allow.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

package services

import (
	"strings"
	"time"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

// NormalizeCouponCode case-normalizes a code the way it is stored.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckCouponUsable validates a coupon against the clock, the cart
// subtotal and both usage limits. userUsage is the caller's redemption
// count so far.
func CheckCouponUsable(coupon *models.Coupon, subtotal float64, userUsage int, now time.Time) error {
	if !coupon.Active {
		return ErrCouponInactive
	}
	if now.After(coupon.ExpiresAt) {
		return ErrCouponExpired
	}
	if subtotal < coupon.MinCartValue {
		return ErrCouponMinCartValue
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return ErrCouponLimitReached
	}
	if coupon.PerUserLimit > 0 && userUsage >= coupon.PerUserLimit {
		return ErrCouponLimitReached
	}
	return nil
}

// CouponDiscount computes the discount a coupon yields on a subtotal.
// Percentage discounts honour the max-discount cap; flat discounts
// never exceed the subtotal.
func CouponDiscount(coupon *models.Coupon, subtotal float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		discount = subtotal * coupon.DiscountValue / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	case models.DiscountTypeFlat:
		discount = coupon.DiscountValue
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

package services

import (
	"testing"
	"time"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

func TestSubtotalAndGrandTotal(t *testing.T) {
	items := []models.CartItem{
		{TotalPrice: 150},
		{TotalPrice: 300},
	}

	if got := Subtotal(items); got != 450 {
		t.Fatalf("subtotal = %v, want 450", got)
	}
	if got := GrandTotal(450, 50); got != 400 {
		t.Fatalf("total = %v, want 400", got)
	}
	// Discount above subtotal floors at zero, never negative.
	if got := GrandTotal(450, 500); got != 0 {
		t.Fatalf("total = %v, want 0", got)
	}
	if got := Subtotal(nil); got != 0 {
		t.Fatalf("empty subtotal = %v, want 0", got)
	}
}

func TestReprice(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{TotalPrice: 200},
			{TotalPrice: 100},
		},
		Coupon: &models.AppliedCoupon{Code: "SAVE50", Discount: 50},
	}
	Reprice(cart)
	if cart.Subtotal != 300 || cart.Discount != 50 || cart.Total != 250 {
		t.Fatalf("repriced cart = %v/%v/%v, want 300/50/250", cart.Subtotal, cart.Discount, cart.Total)
	}

	cart.Coupon = nil
	Reprice(cart)
	if cart.Discount != 0 || cart.Total != 300 {
		t.Fatalf("repriced cart without coupon = %v/%v, want 0/300", cart.Discount, cart.Total)
	}
}

func TestCouponDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   models.Coupon
		subtotal float64
		want     float64
	}{
		{
			name:     "percentage",
			coupon:   models.Coupon{DiscountType: models.DiscountTypePercentage, DiscountValue: 10},
			subtotal: 500,
			want:     50,
		},
		{
			name:     "percentage capped",
			coupon:   models.Coupon{DiscountType: models.DiscountTypePercentage, DiscountValue: 50, MaxDiscount: 100},
			subtotal: 500,
			want:     100,
		},
		{
			name:     "flat",
			coupon:   models.Coupon{DiscountType: models.DiscountTypeFlat, DiscountValue: 75},
			subtotal: 500,
			want:     75,
		},
		{
			name:     "flat never exceeds subtotal",
			coupon:   models.Coupon{DiscountType: models.DiscountTypeFlat, DiscountValue: 600},
			subtotal: 500,
			want:     500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CouponDiscount(&tt.coupon, tt.subtotal); got != tt.want {
				t.Fatalf("discount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckCouponUsable(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	base := models.Coupon{
		Active:       true,
		ExpiresAt:    now.Add(24 * time.Hour),
		MinCartValue: 100,
		UsageLimit:   10,
		UsedCount:    3,
		PerUserLimit: 2,
	}

	if err := CheckCouponUsable(&base, 200, 0, now); err != nil {
		t.Fatalf("usable coupon rejected: %v", err)
	}

	inactive := base
	inactive.Active = false
	if err := CheckCouponUsable(&inactive, 200, 0, now); err != ErrCouponInactive {
		t.Fatalf("got %v, want ErrCouponInactive", err)
	}

	expired := base
	expired.ExpiresAt = now.Add(-time.Hour)
	if err := CheckCouponUsable(&expired, 200, 0, now); err != ErrCouponExpired {
		t.Fatalf("got %v, want ErrCouponExpired", err)
	}

	if err := CheckCouponUsable(&base, 50, 0, now); err != ErrCouponMinCartValue {
		t.Fatalf("got %v, want ErrCouponMinCartValue", err)
	}

	exhausted := base
	exhausted.UsedCount = 10
	if err := CheckCouponUsable(&exhausted, 200, 0, now); err != ErrCouponLimitReached {
		t.Fatalf("got %v, want ErrCouponLimitReached", err)
	}

	if err := CheckCouponUsable(&base, 200, 2, now); err != ErrCouponLimitReached {
		t.Fatalf("per-user limit: got %v, want ErrCouponLimitReached", err)
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	if got := NormalizeCouponCode("  save50 "); got != "SAVE50" {
		t.Fatalf("normalized = %q, want SAVE50", got)
	}
}

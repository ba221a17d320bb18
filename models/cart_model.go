package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a priced line in the cart. UnitPrice and TotalPrice are
// captured when the item is added so repricing is deterministic.
type CartItem struct {
	ProductId  primitive.ObjectID `bson:"productId" json:"productId"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Size       string             `bson:"size,omitempty" json:"size,omitempty"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	UnitPrice  float64            `bson:"unitPrice" json:"unitPrice"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
}

// AppliedCoupon records the coupon attached to a cart along with the
// discount it produced at apply time.
type AppliedCoupon struct {
	CouponId primitive.ObjectID `bson:"couponId" json:"couponId"`
	Code     string             `bson:"code" json:"code"`
	Discount float64            `bson:"discount" json:"discount"`
}

// Cart is owned by exactly one user (unique index on userId). It is
// deleted, not archived, once an order is placed from it.
type Cart struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserId    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	Coupon    *AppliedCoupon     `bson:"coupon,omitempty" json:"coupon,omitempty"`
	Subtotal  float64            `bson:"subtotal" json:"subtotal"`
	Discount  float64            `bson:"discount" json:"discount"`
	Total     float64            `bson:"total" json:"total"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

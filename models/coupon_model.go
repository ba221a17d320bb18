package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFlat       = "flat"
)

type Coupon struct {
	Id            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code          string             `bson:"code" json:"code" validate:"required"`
	DiscountType  string             `bson:"discountType" json:"discountType" validate:"required,oneof=percentage flat"`
	DiscountValue float64            `bson:"discountValue" json:"discountValue" validate:"required,gt=0"`
	MaxDiscount   float64            `bson:"maxDiscount,omitempty" json:"maxDiscount,omitempty"`
	MinCartValue  float64            `bson:"minCartValue" json:"minCartValue" validate:"gte=0"`
	UsageLimit    int                `bson:"usageLimit,omitempty" json:"usageLimit,omitempty"`
	PerUserLimit  int                `bson:"perUserLimit" json:"perUserLimit" validate:"gte=1"`
	UsedCount     int                `bson:"usedCount" json:"usedCount"`
	Active        bool               `bson:"active" json:"active"`
	ExpiresAt     time.Time          `bson:"expiresAt" json:"expiresAt" validate:"required"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CouponUsage tracks how many times a user has redeemed a coupon.
// One document per (couponId, userId) pair, incremented at order
// materialization.
type CouponUsage struct {
	Id       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CouponId primitive.ObjectID `bson:"couponId" json:"couponId"`
	UserId   primitive.ObjectID `bson:"userId" json:"userId"`
	Count    int                `bson:"count" json:"count"`
}

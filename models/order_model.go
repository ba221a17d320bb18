package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPendingPayment = "PENDING_PAYMENT"
	OrderStatusPaid           = "PAID"
	OrderStatusProcessing     = "PROCESSING"
	OrderStatusShipped        = "SHIPPED"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusCancelled      = "CANCELLED"
)

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

// OrderItem is a snapshot of a cart line at purchase time. Name, image
// and price are copies, never live product references.
type OrderItem struct {
	ProductId  primitive.ObjectID `bson:"productId" json:"productId"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Size       string             `bson:"size,omitempty" json:"size,omitempty"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	UnitPrice  float64            `bson:"unitPrice" json:"unitPrice"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
}

// PaymentInfo is the provider sub-record attached to an order once the
// client-side payment flow completes and verifies.
type PaymentInfo struct {
	ProviderOrderId   string `bson:"providerOrderId" json:"providerOrderId"`
	ProviderPaymentId string `bson:"providerPaymentId" json:"providerPaymentId"`
	Signature         string `bson:"signature" json:"-"`
	Status            string `bson:"status" json:"status"`
}

// Order is created once from a verified payment and afterwards mutated
// only by status transitions and the invoice-URL backfill.
type Order struct {
	Id              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserId          primitive.ObjectID `bson:"userId" json:"userId"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	OrderYear       string             `bson:"orderYear" json:"-"`
	OrderSequence   int64              `bson:"orderSequence" json:"-"`
	Items           []OrderItem        `bson:"items" json:"items"`
	BillingAddress  AddressSnapshot    `bson:"billingAddress" json:"billingAddress"`
	ShippingAddress AddressSnapshot    `bson:"shippingAddress" json:"shippingAddress"`
	CouponCode      string             `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Discount        float64            `bson:"discount" json:"discount"`
	Total           float64            `bson:"total" json:"total"`
	Payment         PaymentInfo        `bson:"payment" json:"payment"`
	InvoiceUrl      string             `bson:"invoiceUrl,omitempty" json:"invoiceUrl,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

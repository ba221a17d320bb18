package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

// Store interfaces are kept small so the service can be exercised with
// in-memory fakes. Lookups return (nil, nil) when nothing matches.

type CartStore interface {
	FindByUser(ctx context.Context, userId primitive.ObjectID) (*models.Cart, error)
	DeleteByUser(ctx context.Context, userId primitive.ObjectID) error
}

type AddressStore interface {
	FindByIdForUser(ctx context.Context, id, userId primitive.ObjectID) (*models.Address, error)
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindById(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	SetInvoiceUrl(ctx context.Context, id primitive.ObjectID, url string) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// SequenceStore hands out the next order sequence for a 2-digit year.
// Implementations must increment atomically; concurrent checkouts may
// not observe the same value twice.
type SequenceStore interface {
	NextOrderSequence(ctx context.Context, year string) (int64, error)
}

type CouponUsageStore interface {
	ConsumeUsage(ctx context.Context, couponId, userId primitive.ObjectID) error
}

type UserStore interface {
	FindById(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// PlaceOrderRequest carries the client-reported payment completion
// plus the address choices for the order.
type PlaceOrderRequest struct {
	ProviderOrderId   string
	ProviderPaymentId string
	Signature         string
	BillingAddressId  primitive.ObjectID
	ShippingAddressId primitive.ObjectID
}

// OrderService runs the order-placement workflow. All collaborators
// are injected.
type OrderService struct {
	Carts     CartStore
	Addresses AddressStore
	Orders    OrderStore
	Sequences SequenceStore
	Usages    CouponUsageStore
	Users     UserStore
	Gateway   PaymentGateway
	Invoices  InvoiceGenerator
	Storage   BlobStorage
	Mailer    EmailSender
}

// FormatOrderNumber renders the human-readable order number, zero
// padding the sequence to at least two digits.
func FormatOrderNumber(year string, sequence int64) string {
	return fmt.Sprintf("PAAN-%s-%02d", year, sequence)
}

// CreatePaymentIntent opens a provider order for the cart's current
// total. Nothing is persisted locally.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, userId primitive.ObjectID) (*PaymentIntent, error) {
	cart, err := s.Carts.FindByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if cart.Total <= 0 {
		return nil, ErrInvalidAmount
	}

	return s.Gateway.CreateOrder(AmountInPaise(cart.Total), "INR", ReceiptId(time.Now()))
}

// PlaceOrder turns a verified payment into a durable order.
//
// Steps 1-5 (verify, cart fetch, address fetch, numbering, insert) are
// the atomic core: any failure aborts with no order and an untouched
// cart. Everything after the insert is best-effort; failures are
// logged, collected as warnings and never undo the order.
func (s *OrderService) PlaceOrder(ctx context.Context, userId primitive.ObjectID, req PlaceOrderRequest) (*models.Order, []string, error) {
	if !s.Gateway.VerifySignature(req.ProviderOrderId, req.ProviderPaymentId, req.Signature) {
		return nil, nil, ErrPaymentVerificationFailed
	}

	cart, err := s.Carts.FindByUser(ctx, userId)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	billing, err := s.Addresses.FindByIdForUser(ctx, req.BillingAddressId, userId)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch billing address: %w", err)
	}
	shipping, err := s.Addresses.FindByIdForUser(ctx, req.ShippingAddressId, userId)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch shipping address: %w", err)
	}
	if billing == nil || shipping == nil {
		return nil, nil, ErrInvalidAddress
	}

	year := time.Now().Format("06")
	sequence, err := s.Sequences.NextOrderSequence(ctx, year)
	if err != nil {
		return nil, nil, fmt.Errorf("next order sequence: %w", err)
	}

	now := time.Now()
	order := &models.Order{
		UserId:          userId,
		OrderNumber:     FormatOrderNumber(year, sequence),
		OrderYear:       year,
		OrderSequence:   sequence,
		Items:           snapshotItems(cart.Items),
		BillingAddress:  billing.Snapshot(),
		ShippingAddress: shipping.Snapshot(),
		Subtotal:        cart.Subtotal,
		Discount:        cart.Discount,
		Total:           cart.Total,
		Payment: models.PaymentInfo{
			ProviderOrderId:   req.ProviderOrderId,
			ProviderPaymentId: req.ProviderPaymentId,
			Signature:         req.Signature,
			Status:            models.PaymentStatusPaid,
		},
		Status:    models.OrderStatusPaid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if cart.Coupon != nil {
		order.CouponCode = cart.Coupon.Code
	}

	id, err := s.Orders.Insert(ctx, order)
	if err != nil {
		return nil, nil, fmt.Errorf("insert order: %w", err)
	}
	order.Id = id

	// The order exists from here on. Everything below must not fail it.
	warnings := s.runPostCommit(ctx, order, cart, userId)
	return order, warnings, nil
}

// runPostCommit executes the best-effort tail: invoice, coupon usage,
// cart clear, confirmation mail, temp cleanup. Each sub-step is
// isolated from the others' failures.
func (s *OrderService) runPostCommit(ctx context.Context, order *models.Order, cart *models.Cart, userId primitive.ObjectID) []string {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("order %s: %s", order.OrderNumber, msg)
		warnings = append(warnings, msg)
	}

	var invoicePath string
	if s.Invoices != nil && s.Storage != nil {
		path, err := s.Invoices.GenerateInvoice(order)
		if err != nil {
			warn("invoice generation failed: %v", err)
		} else {
			invoicePath = path
			url, err := s.Storage.UploadDocument(ctx, path, "invoice_"+order.OrderNumber)
			if err != nil {
				warn("invoice upload failed: %v", err)
			} else {
				order.InvoiceUrl = url
				if err := s.Orders.SetInvoiceUrl(ctx, order.Id, url); err != nil {
					warn("invoice url backfill failed: %v", err)
				}
			}
		}
	}

	if cart.Coupon != nil && s.Usages != nil {
		if err := s.Usages.ConsumeUsage(ctx, cart.Coupon.CouponId, userId); err != nil {
			warn("coupon usage update failed: %v", err)
		}
	}

	if err := s.Carts.DeleteByUser(ctx, userId); err != nil {
		warn("cart clear failed: %v", err)
	}

	if s.Mailer != nil && s.Users != nil {
		user, err := s.Users.FindById(ctx, userId)
		if err != nil || user == nil {
			warn("confirmation mail skipped, user lookup failed: %v", err)
		} else {
			var attachments []string
			if invoicePath != "" {
				attachments = append(attachments, invoicePath)
			}
			subject := "Your Paanshala order " + order.OrderNumber
			if err := s.Mailer.Send(user.Email, subject, OrderConfirmationBody(order), attachments); err != nil {
				warn("confirmation mail failed: %v", err)
			}
		}
	}

	if invoicePath != "" {
		if err := os.Remove(invoicePath); err != nil && !os.IsNotExist(err) {
			warn("temp invoice cleanup failed: %v", err)
		}
	}

	return warnings
}

// UpdateStatus applies one transition from the fulfillment table and
// returns the updated order.
func (s *OrderService) UpdateStatus(ctx context.Context, orderId primitive.ObjectID, status string) (*models.Order, error) {
	order, err := s.Orders.FindById(ctx, orderId)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := CheckTransition(order.Status, status); err != nil {
		return nil, err
	}

	if err := s.Orders.UpdateStatus(ctx, orderId, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return order, nil
}

func snapshotItems(items []models.CartItem) []models.OrderItem {
	snapshot := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, models.OrderItem{
			ProductId:  item.ProductId,
			Name:       item.Name,
			Image:      item.Image,
			Size:       item.Size,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	return snapshot
}

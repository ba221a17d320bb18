package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentIntent is the provider-side pending order the client completes
// with the checkout widget.
type PaymentIntent struct {
	ProviderOrderId string `json:"providerOrderId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	KeyId           string `json:"keyId"`
}

// PaymentGateway creates provider orders and verifies client-reported
// payment completions.
type PaymentGateway interface {
	CreateOrder(amountMinorUnits int64, currency, receipt string) (*PaymentIntent, error)
	VerifySignature(providerOrderId, providerPaymentId, signature string) bool
}

// RazorpayGateway talks to Razorpay. The key pair is injected, never
// read from package state.
type RazorpayGateway struct {
	keyId  string
	secret string
	client *razorpay.Client
}

func NewRazorpayGateway(keyId, secret string) *RazorpayGateway {
	return &RazorpayGateway{
		keyId:  keyId,
		secret: secret,
		client: razorpay.NewClient(keyId, secret),
	}
}

func (g *RazorpayGateway) CreateOrder(amountMinorUnits int64, currency, receipt string) (*PaymentIntent, error) {
	data := map[string]interface{}{
		"amount":   amountMinorUnits,
		"currency": currency,
		"receipt":  receipt,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := order["id"].(string)
	return &PaymentIntent{
		ProviderOrderId: id,
		Amount:          amountMinorUnits,
		Currency:        currency,
		KeyId:           g.keyId,
	}, nil
}

func (g *RazorpayGateway) VerifySignature(providerOrderId, providerPaymentId, signature string) bool {
	return VerifySignature(g.secret, providerOrderId, providerPaymentId, signature)
}

// VerifySignature checks the HMAC-SHA256 hex signature Razorpay's
// client flow returns over "<orderId>|<paymentId>". Comparison is
// constant-time.
func VerifySignature(secret, providerOrderId, providerPaymentId, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderId + "|" + providerPaymentId))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// AmountInPaise converts a rupee total to Razorpay's minor currency
// unit.
func AmountInPaise(total float64) int64 {
	return int64(math.Round(total * 100))
}

// ReceiptId builds the timestamp-based receipt tag attached to a
// provider order.
func ReceiptId(now time.Time) string {
	return fmt.Sprintf("rcpt_%d", now.UnixNano())
}

package services

import (
	"testing"
	"time"
)

func TestVerifySignature(t *testing.T) {
	const (
		secret = "s3cr3t"
		// hex(HMAC-SHA256("s3cr3t", "order_1|pay_1"))
		valid = "c4ba7785e595b717abd8b4847eaf30e97f23acbdbe1b8f5cbbf17d28d63b068f"
	)

	if !VerifySignature(secret, "order_1", "pay_1", valid) {
		t.Fatal("valid signature rejected")
	}

	// Any single-character mutation must fail.
	for i := 0; i < len(valid); i++ {
		mutated := []byte(valid)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}
		if VerifySignature(secret, "order_1", "pay_1", string(mutated)) {
			t.Fatalf("mutated signature at index %d accepted", i)
		}
	}

	if VerifySignature(secret, "order_1", "pay_1", "") {
		t.Fatal("empty signature accepted")
	}
	if VerifySignature(secret, "order_2", "pay_1", valid) {
		t.Fatal("signature accepted for the wrong provider order")
	}
	if VerifySignature("wrong", "order_1", "pay_1", valid) {
		t.Fatal("signature accepted with the wrong secret")
	}
}

func TestAmountInPaise(t *testing.T) {
	tests := []struct {
		total float64
		want  int64
	}{
		{100, 10000},
		{99.99, 9999},
		{0.1 + 0.2, 30}, // rounds, does not truncate
		{449.99, 44999},
	}
	for _, tt := range tests {
		if got := AmountInPaise(tt.total); got != tt.want {
			t.Fatalf("AmountInPaise(%v) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestReceiptId(t *testing.T) {
	now := time.Unix(0, 1234567890)
	if got := ReceiptId(now); got != "rcpt_1234567890" {
		t.Fatalf("receipt = %q", got)
	}
}

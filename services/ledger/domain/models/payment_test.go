package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewPayment(t *testing.T) {
	amount := decimal.RequireFromString("80.00")

	t.Run("check payment keeps trimmed check number", func(t *testing.T) {
		p, err := NewPayment(4, 1, amount, PaymentCheck, " 1042 ", " thanks ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.CheckNumber != "1042" || p.Notes != "thanks" {
			t.Fatalf("unexpected payment: %+v", p)
		}
		if p.CreatedAt.IsZero() {
			t.Fatal("CreatedAt not set")
		}
	})

	t.Run("cash payment without check number", func(t *testing.T) {
		if _, err := NewPayment(4, 1, amount, PaymentCash, "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name   string
		amount decimal.Decimal
		method PaymentMethod
		check  string
	}{
		{"zero amount", decimal.Zero, PaymentCash, ""},
		{"negative amount", decimal.NewFromInt(-10), PaymentCash, ""},
		{"check without number", amount, PaymentCheck, "  "},
		{"cash with number", amount, PaymentCash, "1042"},
		{"unknown method", amount, PaymentMethod("card"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPayment(4, 1, tt.amount, tt.method, tt.check, ""); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	t.Run("missing bidder", func(t *testing.T) {
		if _, err := NewPayment(0, 1, amount, PaymentCash, "", ""); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{" Ada ", " Lovelace ", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := (Bidder{FirstName: tt.first, LastName: tt.last}).DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestAllocation_Available(t *testing.T) {
	a := Allocation{TotalQuantity: 10, AllocatedQuantity: 8}
	if got := a.Available(0); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := a.Available(3); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a bidder settled.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCheck PaymentMethod = "check"
)

// Payment is an append-only ledger entry. It is never reconciled against bids.
type Payment struct {
	ID          int64
	BidderID    int64
	AuctionID   int64
	AmountPaid  decimal.Decimal
	Method      PaymentMethod
	CheckNumber string
	Notes       string
	CreatedAt   time.Time
}

// NewPayment validates and builds an unsaved payment. A check number is
// required for checks and rejected for cash.
func NewPayment(bidderID, auctionID int64, amount decimal.Decimal, method PaymentMethod, checkNumber, notes string) (*Payment, error) {
	if err := requireID("bidder_id", bidderID); err != nil {
		return nil, err
	}
	if err := requireID("auction_id", auctionID); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount_paid must be greater than 0")
	}

	checkNumber = strings.TrimSpace(checkNumber)
	switch method {
	case PaymentCheck:
		if checkNumber == "" {
			return nil, fmt.Errorf("check_number is required for check payments")
		}
	case PaymentCash:
		if checkNumber != "" {
			return nil, fmt.Errorf("check_number is only allowed for check payments")
		}
	default:
		return nil, fmt.Errorf("payment_method must be cash or check")
	}

	return &Payment{
		BidderID:    bidderID,
		AuctionID:   auctionID,
		AmountPaid:  amount,
		Method:      method,
		CheckNumber: checkNumber,
		Notes:       strings.TrimSpace(notes),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation is the quantity picture of one (auction, item) pair as read
// inside a write transaction.
type Allocation struct {
	AuctionID         int64
	ItemID            int64
	TotalQuantity     int
	AllocatedQuantity int
}

// Available returns the quantity free for a bid that currently holds
// own units, counting those units as its own.
func (a Allocation) Available(own int) int {
	return a.TotalQuantity - a.AllocatedQuantity + own
}

// BidSummary is an existing bid as shown next to the inventory figures.
type BidSummary struct {
	BidID        int64
	BidderID     int64
	BidderName   string
	WinningPrice decimal.Decimal
	QuantityWon  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Inventory answers "how much of this item is still free in this auction".
// AvailableQuantity is not clamped and goes negative on over-allocated data.
type Inventory struct {
	ItemID            int64
	AuctionID         int64
	TotalQuantity     int
	AllocatedQuantity int
	AvailableQuantity int
	ExistingBids      []BidSummary
	CanAddBid         bool
}

// AuctionStats are the running totals returned after a save.
type AuctionStats struct {
	AuctionID    int64
	TotalRevenue decimal.Decimal
	BidCount     int
}

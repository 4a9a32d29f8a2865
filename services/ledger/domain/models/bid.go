package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultQuantityWon applies when a save request omits quantity_won.
const DefaultQuantityWon = 1

// WinningBid is the recorded outcome for one item in one auction. The pair
// (AuctionID, ItemID) identifies at most one row.
type WinningBid struct {
	ID           int64
	AuctionID    int64
	ItemID       int64
	BidderID     int64
	WinningPrice decimal.Decimal
	QuantityWon  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewWinningBid builds an unsaved bid for a pair. A zero price is tolerated;
// callers that require a positive price check it themselves.
func NewWinningBid(auctionID, itemID, bidderID int64, price decimal.Decimal, quantity int) (*WinningBid, error) {
	if err := requireID("auction_id", auctionID); err != nil {
		return nil, err
	}
	if err := requireID("item_id", itemID); err != nil {
		return nil, err
	}
	if err := requireID("bidder_id", bidderID); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("winning_price must not be negative")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity_won must be at least 1")
	}
	now := time.Now().UTC()
	return &WinningBid{
		AuctionID:    auctionID,
		ItemID:       itemID,
		BidderID:     bidderID,
		WinningPrice: price,
		QuantityWon:  quantity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// BidChange is a requested edit of an existing bid. A nil WinningPrice keeps
// the stored price.
type BidChange struct {
	BidderID     int64
	WinningPrice *decimal.Decimal
	QuantityWon  int
}

// Validate checks the structural rules of a change.
func (c BidChange) Validate() error {
	if err := requireID("bidder_id", c.BidderID); err != nil {
		return err
	}
	if c.QuantityWon < 1 {
		return fmt.Errorf("quantity_won must be a positive number")
	}
	if c.WinningPrice != nil && c.WinningPrice.IsNegative() {
		return fmt.Errorf("winning_price must not be negative")
	}
	return nil
}

// Apply copies the change onto b and bumps UpdatedAt.
func (b *WinningBid) Apply(c BidChange) {
	b.BidderID = c.BidderID
	b.QuantityWon = c.QuantityWon
	if c.WinningPrice != nil {
		b.WinningPrice = *c.WinningPrice
	}
	b.UpdatedAt = time.Now().UTC()
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

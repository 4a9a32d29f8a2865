package repositories

import (
	"context"

	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

// QuantityGuard is evaluated inside the write transaction, after the item row
// is locked, with the current allocation of the pair and the quantity held by
// the row being replaced (0 when there is none). A non-nil error aborts the
// write.
type QuantityGuard func(alloc models.Allocation, oldQty, newQty int) error

// BidRepository is the persistence interface for winning bids.
// The domain layer owns this interface; infrastructure implements it.
type BidRepository interface {
	// Inventory returns the allocation of a pair and its bids, newest first.
	// Returns ErrItemNotFound when the item does not exist.
	Inventory(ctx context.Context, auctionID, itemID int64) (models.Allocation, []models.BidSummary, error)

	// Upsert writes bid as the single winner of its pair, replacing any
	// existing row. The stored row is returned.
	Upsert(ctx context.Context, bid *models.WinningBid, guard QuantityGuard) (*models.WinningBid, error)

	// Update applies change to the bid with the given ID.
	// Returns ErrBidNotFound when no such bid exists.
	Update(ctx context.Context, bidID int64, change models.BidChange, guard QuantityGuard) (*models.WinningBid, error)

	// DeleteByPair removes the bid of a pair and reports whether a row existed.
	DeleteByPair(ctx context.Context, auctionID, itemID int64) (*models.WinningBid, bool, error)

	// DeleteByID removes a bid and returns it. Returns ErrBidNotFound when absent.
	DeleteByID(ctx context.Context, bidID int64) (*models.WinningBid, error)

	// Stats returns revenue and bid count for an auction.
	Stats(ctx context.Context, auctionID int64) (models.AuctionStats, error)
}

// CatalogReader is the read-only view of catalog records owned elsewhere.
type CatalogReader interface {
	GetItem(ctx context.Context, itemID int64) (*models.Item, error)
	GetBidder(ctx context.Context, bidderID int64) (*models.Bidder, error)
	ItemInAuction(ctx context.Context, itemID, auctionID int64) (bool, error)
}

// PaymentRepository appends and lists payments. Payments are never updated.
type PaymentRepository interface {
	Save(ctx context.Context, p *models.Payment) error
	ListByBidder(ctx context.Context, bidderID int64) ([]*models.Payment, error)
}

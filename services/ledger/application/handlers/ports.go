package handlers

import (
	"context"

	"github.com/Troubladore/silent-auction-sub001/services/ledger/application/services"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

// BidLedger is the part of services.LedgerService the HTTP layer calls.
type BidLedger interface {
	CheckInventory(ctx context.Context, itemID, auctionID int64) (*models.Inventory, error)
	SaveBid(ctx context.Context, in services.SaveBidInput) (*models.WinningBid, models.AuctionStats, error)
	UpdateBid(ctx context.Context, bidID int64, change models.BidChange) (*models.WinningBid, error)
	DeleteBidByPair(ctx context.Context, auctionID, itemID int64) error
	DeleteBid(ctx context.Context, bidID int64) error
	CheckItemInAuction(ctx context.Context, itemID, auctionID int64) (bool, error)
	Stats(ctx context.Context, auctionID int64) (models.AuctionStats, error)
}

// PaymentLedger is the part of services.PaymentService the HTTP layer calls.
type PaymentLedger interface {
	RecordPayment(ctx context.Context, in services.RecordPaymentInput) (*models.Payment, error)
	ListPayments(ctx context.Context, bidderID int64) ([]*models.Payment, error)
}

var (
	_ BidLedger     = (*services.LedgerService)(nil)
	_ PaymentLedger = (*services.PaymentService)(nil)
)

// Package services contains stateless domain rules for the ledger. They act
// on values already read from storage and have no I/O of their own.
package services

import (
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

// CheckQuantityChange decides whether a bid holding oldQty units may move to
// newQty. Decreases and no-ops always pass, even on over-allocated data.
// An increase passes when newQty fits in total − allocated + oldQty.
func CheckQuantityChange(alloc models.Allocation, oldQty, newQty int) error {
	if newQty <= oldQty {
		return nil
	}
	available := alloc.Available(oldQty)
	if newQty > available {
		return &domain.InsufficientInventoryError{Requested: newQty, Available: available}
	}
	return nil
}

// BuildInventory assembles the inventory answer for a pair. Available is not
// clamped at zero.
func BuildInventory(alloc models.Allocation, bids []models.BidSummary) *models.Inventory {
	available := alloc.TotalQuantity - alloc.AllocatedQuantity
	if bids == nil {
		bids = []models.BidSummary{}
	}
	return &models.Inventory{
		ItemID:            alloc.ItemID,
		AuctionID:         alloc.AuctionID,
		TotalQuantity:     alloc.TotalQuantity,
		AllocatedQuantity: alloc.AllocatedQuantity,
		AvailableQuantity: available,
		ExistingBids:      bids,
		CanAddBid:         available > 0,
	}
}

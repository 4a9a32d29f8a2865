package handlers

import (
	"context"

	"github.com/Troubladore/silent-auction-sub001/services/ledger/application/services"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

// stubLedger records the last call and returns canned results.
type stubLedger struct {
	inventory *models.Inventory
	bid       *models.WinningBid
	stats     models.AuctionStats
	enrolled  bool
	err       error

	savedInput    services.SaveBidInput
	updatedID     int64
	updatedChange models.BidChange
	deletedPair   [2]int64
	deletedID     int64
	inventoryArgs [2]int64
}

func (s *stubLedger) CheckInventory(_ context.Context, itemID, auctionID int64) (*models.Inventory, error) {
	s.inventoryArgs = [2]int64{itemID, auctionID}
	return s.inventory, s.err
}

func (s *stubLedger) SaveBid(_ context.Context, in services.SaveBidInput) (*models.WinningBid, models.AuctionStats, error) {
	s.savedInput = in
	return s.bid, s.stats, s.err
}

func (s *stubLedger) UpdateBid(_ context.Context, bidID int64, change models.BidChange) (*models.WinningBid, error) {
	s.updatedID, s.updatedChange = bidID, change
	return s.bid, s.err
}

func (s *stubLedger) DeleteBidByPair(_ context.Context, auctionID, itemID int64) error {
	s.deletedPair = [2]int64{auctionID, itemID}
	return s.err
}

func (s *stubLedger) DeleteBid(_ context.Context, bidID int64) error {
	s.deletedID = bidID
	return s.err
}

func (s *stubLedger) CheckItemInAuction(_ context.Context, itemID, auctionID int64) (bool, error) {
	s.inventoryArgs = [2]int64{itemID, auctionID}
	return s.enrolled, s.err
}

func (s *stubLedger) Stats(_ context.Context, _ int64) (models.AuctionStats, error) {
	return s.stats, s.err
}

type stubPayments struct {
	payment  *models.Payment
	list     []*models.Payment
	err      error
	input    services.RecordPaymentInput
	bidderID int64
}

func (s *stubPayments) RecordPayment(_ context.Context, in services.RecordPaymentInput) (*models.Payment, error) {
	s.input = in
	return s.payment, s.err
}

func (s *stubPayments) ListPayments(_ context.Context, bidderID int64) ([]*models.Payment, error) {
	s.bidderID = bidderID
	return s.list, s.err
}

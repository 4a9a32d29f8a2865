package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	pkgcache "github.com/Troubladore/silent-auction-sub001/pkg/cache"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	ledgerdomain "github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

const (
	auctionID = int64(1)
	itemID    = int64(100)
	aliceID   = int64(10)
	bobID     = int64(11)
)

func newFixture(t *testing.T, totalQty int) (*LedgerService, *memLedger) {
	t.Helper()
	repo := newMemLedger()
	repo.addAuction(auctionID)
	repo.addItem(itemID, totalQty)
	repo.addBidder(aliceID, "Alice", "Archer")
	repo.addBidder(bobID, "Bob", "")
	repo.enroll(auctionID, itemID)
	return NewLedgerService(repo, repo, nil, logger.Discard(), nil), repo
}

func save(t *testing.T, svc *LedgerService, bidder int64, price string, qty int) (*models.WinningBid, models.AuctionStats, error) {
	t.Helper()
	return svc.SaveBid(context.Background(), SaveBidInput{
		AuctionID: auctionID, ItemID: itemID, BidderID: bidder,
		WinningPrice: decimal.RequireFromString(price), QuantityWon: qty,
	})
}

func mustInventory(t *testing.T, svc *LedgerService) *models.Inventory {
	t.Helper()
	inv, err := svc.CheckInventory(context.Background(), itemID, auctionID)
	if err != nil {
		t.Fatalf("CheckInventory: %v", err)
	}
	return inv
}

func TestCheckInventory_Arithmetic(t *testing.T) {
	svc, _ := newFixture(t, 10)
	if _, _, err := save(t, svc, aliceID, "50", 4); err != nil {
		t.Fatalf("save: %v", err)
	}

	inv := mustInventory(t, svc)
	if inv.TotalQuantity != 10 || inv.AllocatedQuantity != 4 || inv.AvailableQuantity != 6 || !inv.CanAddBid {
		t.Fatalf("unexpected inventory: %+v", inv)
	}
	if len(inv.ExistingBids) != 1 || inv.ExistingBids[0].BidderName != "Alice Archer" {
		t.Fatalf("unexpected bids: %+v", inv.ExistingBids)
	}
}

func TestCheckInventory_Validation(t *testing.T) {
	svc, _ := newFixture(t, 1)
	for _, ids := range [][2]int64{{0, auctionID}, {itemID, 0}, {0, 0}} {
		_, err := svc.CheckInventory(context.Background(), ids[0], ids[1])
		if !errors.Is(err, ledgerdomain.ErrValidation) {
			t.Errorf("CheckInventory(%d, %d): expected ErrValidation, got %v", ids[0], ids[1], err)
		}
	}
}

func TestCheckInventory_UnknownItem(t *testing.T) {
	svc, _ := newFixture(t, 1)
	_, err := svc.CheckInventory(context.Background(), 999, auctionID)
	if !errors.Is(err, ledgerdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCheckInventory_OverAllocatedNotClamped(t *testing.T) {
	svc, repo := newFixture(t, 2)
	repo.seedBid(auctionID, itemID, aliceID, 5)

	inv := mustInventory(t, svc)
	if inv.AvailableQuantity != -3 || inv.CanAddBid {
		t.Fatalf("unexpected inventory: %+v", inv)
	}
}

func TestCheckInventory_MissingBidderHasEmptyName(t *testing.T) {
	svc, repo := newFixture(t, 5)
	repo.seedBid(auctionID, itemID, 404, 1)

	inv := mustInventory(t, svc)
	if len(inv.ExistingBids) != 1 || inv.ExistingBids[0].BidderName != "" {
		t.Fatalf("unexpected bids: %+v", inv.ExistingBids)
	}
}

func TestSaveBid_OverwriteSemantics(t *testing.T) {
	svc, repo := newFixture(t, 10)

	first, _, err := save(t, svc, aliceID, "100", 2)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, stats, err := save(t, svc, bobID, "120.50", 3)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if len(repo.bids) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(repo.bids))
	}
	if second.ID != first.ID {
		t.Fatalf("expected row %d to be overwritten, got new row %d", first.ID, second.ID)
	}
	if second.BidderID != bobID || second.QuantityWon != 3 || !second.WinningPrice.Equal(decimal.RequireFromString("120.50")) {
		t.Fatalf("second save not reflected: %+v", second)
	}
	if stats.BidCount != 1 || !stats.TotalRevenue.Equal(decimal.RequireFromString("120.50")) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

// A single-unit item taken by one bidder is silently reassigned by a second
// save on the same pair. Single-winner model: the overwrite is not rejected.
func TestSaveBid_EndToEndSingleUnitOverwrite(t *testing.T) {
	svc, repo := newFixture(t, 1)

	if _, _, err := save(t, svc, aliceID, "100", 1); err != nil {
		t.Fatalf("save A: %v", err)
	}
	inv := mustInventory(t, svc)
	if inv.AvailableQuantity != 0 || inv.CanAddBid {
		t.Fatalf("after A: unexpected inventory %+v", inv)
	}

	saved, _, err := save(t, svc, bobID, "110", 1)
	if err != nil {
		t.Fatalf("save B should overwrite A, got %v", err)
	}
	if saved.BidderID != bobID || len(repo.bids) != 1 {
		t.Fatalf("expected B to replace A: %+v (rows=%d)", saved, len(repo.bids))
	}
}

func TestSaveBid_InsufficientInventory(t *testing.T) {
	svc, _ := newFixture(t, 3)

	_, _, err := save(t, svc, aliceID, "10", 4)
	var inv *ledgerdomain.InsufficientInventoryError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InsufficientInventoryError, got %v", err)
	}
	if inv.Available != 3 {
		t.Fatalf("expected available 3, got %d", inv.Available)
	}
}

func TestSaveBid_GrowingOverwriteCountsReplacedQuantity(t *testing.T) {
	svc, _ := newFixture(t, 5)
	if _, _, err := save(t, svc, aliceID, "10", 3); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, _, err := save(t, svc, bobID, "10", 5); err != nil {
		t.Fatalf("overwrite to full stock should pass: %v", err)
	}
	_, _, err := save(t, svc, aliceID, "10", 6)
	if !errors.Is(err, ledgerdomain.ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory, got %v", err)
	}
}

func TestSaveBid_Validation(t *testing.T) {
	svc, repo := newFixture(t, 5)
	tests := []SaveBidInput{
		{ItemID: itemID, BidderID: aliceID, QuantityWon: 1},
		{AuctionID: auctionID, BidderID: aliceID, QuantityWon: 1},
		{AuctionID: auctionID, ItemID: itemID, QuantityWon: 1},
		{AuctionID: auctionID, ItemID: itemID, BidderID: aliceID, QuantityWon: 0},
		{AuctionID: auctionID, ItemID: itemID, BidderID: aliceID, QuantityWon: 1, WinningPrice: decimal.NewFromInt(-1)},
	}
	for i, in := range tests {
		if _, _, err := svc.SaveBid(context.Background(), in); !errors.Is(err, ledgerdomain.ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
	if len(repo.bids) != 0 {
		t.Fatalf("invalid saves must not write, got %d rows", len(repo.bids))
	}
}

func TestSaveBid_ZeroPriceTolerated(t *testing.T) {
	svc, _ := newFixture(t, 1)
	if _, _, err := save(t, svc, aliceID, "0", 1); err != nil {
		t.Fatalf("zero price should be tolerated by the ledger: %v", err)
	}
}

func TestSaveBid_UnknownBidder(t *testing.T) {
	svc, _ := newFixture(t, 1)
	_, _, err := save(t, svc, 404, "10", 1)
	if !errors.Is(err, ledgerdomain.ErrBidderNotFound) {
		t.Fatalf("expected ErrBidderNotFound, got %v", err)
	}
}

func TestUpdateBid_SelfExclusion(t *testing.T) {
	svc, _ := newFixture(t, 10)
	bid, _, err := save(t, svc, aliceID, "40", 4)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, err := svc.UpdateBid(context.Background(), bid.ID, models.BidChange{BidderID: aliceID, QuantityWon: 9})
	if err != nil {
		t.Fatalf("raise to 9 should pass: %v", err)
	}
	if updated.QuantityWon != 9 {
		t.Fatalf("expected 9, got %d", updated.QuantityWon)
	}

	// Put it back to 4 and raise past stock.
	if _, err := svc.UpdateBid(context.Background(), bid.ID, models.BidChange{BidderID: aliceID, QuantityWon: 4}); err != nil {
		t.Fatalf("lower to 4: %v", err)
	}
	_, err = svc.UpdateBid(context.Background(), bid.ID, models.BidChange{BidderID: aliceID, QuantityWon: 11})
	var inv *ledgerdomain.InsufficientInventoryError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InsufficientInventoryError, got %v", err)
	}
	if inv.Available != 10 {
		t.Fatalf("expected available 10, got %d", inv.Available)
	}

	if got := mustInventory(t, svc).AllocatedQuantity; got != 4 {
		t.Fatalf("rejected update must not mutate, allocated = %d", got)
	}
}

func TestUpdateBid_DecreaseAlwaysAllowed(t *testing.T) {
	svc, repo := newFixture(t, 10)
	bid := repo.seedBid(auctionID, itemID, aliceID, 15)

	updated, err := svc.UpdateBid(context.Background(), bid.ID, models.BidChange{BidderID: aliceID, QuantityWon: 12})
	if err != nil {
		t.Fatalf("decrease on over-allocated data must pass: %v", err)
	}
	if updated.QuantityWon != 12 {
		t.Fatalf("expected 12, got %d", updated.QuantityWon)
	}
}

func TestUpdateBid_PriceRetainedWhenAbsent(t *testing.T) {
	svc, _ := newFixture(t, 10)
	bid, _, err := save(t, svc, aliceID, "75.25", 1)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, err := svc.UpdateBid(context.Background(), bid.ID, models.BidChange{BidderID: bobID, QuantityWon: 2})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.WinningPrice.Equal(decimal.RequireFromString("75.25")) || updated.BidderID != bobID {
		t.Fatalf("unexpected bid: %+v", updated)
	}

	price := decimal.RequireFromString("80")
	updated, err = svc.UpdateBid(context.Background(), bid.ID, models.BidChange{BidderID: bobID, QuantityWon: 2, WinningPrice: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.WinningPrice.Equal(price) {
		t.Fatalf("expected price 80, got %s", updated.WinningPrice)
	}
}

func TestUpdateBid_Errors(t *testing.T) {
	svc, _ := newFixture(t, 10)

	if _, err := svc.UpdateBid(context.Background(), 0, models.BidChange{BidderID: aliceID, QuantityWon: 1}); !errors.Is(err, ledgerdomain.ErrValidation) {
		t.Errorf("missing bid_id: expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateBid(context.Background(), 5, models.BidChange{QuantityWon: 1}); !errors.Is(err, ledgerdomain.ErrValidation) {
		t.Errorf("missing bidder_id: expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateBid(context.Background(), 5, models.BidChange{BidderID: aliceID}); !errors.Is(err, ledgerdomain.ErrValidation) {
		t.Errorf("zero quantity: expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateBid(context.Background(), 999, models.BidChange{BidderID: aliceID, QuantityWon: 1}); !errors.Is(err, ledgerdomain.ErrBidNotFound) {
		t.Errorf("unknown bid: expected ErrBidNotFound, got %v", err)
	}
}

func TestDeleteBidByPair_Idempotent(t *testing.T) {
	svc, _ := newFixture(t, 10)

	if err := svc.DeleteBidByPair(context.Background(), auctionID, itemID); err != nil {
		t.Fatalf("delete of absent pair must succeed: %v", err)
	}
	if got := mustInventory(t, svc).AllocatedQuantity; got != 0 {
		t.Fatalf("expected allocated 0, got %d", got)
	}

	if _, _, err := save(t, svc, aliceID, "10", 3); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.DeleteBidByPair(context.Background(), auctionID, itemID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteBidByPair(context.Background(), auctionID, itemID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if got := mustInventory(t, svc).AllocatedQuantity; got != 0 {
		t.Fatalf("expected allocated 0 after delete, got %d", got)
	}
}

func TestDeleteBid_ByID(t *testing.T) {
	svc, _ := newFixture(t, 10)
	bid, _, err := save(t, svc, aliceID, "10", 3)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.DeleteBid(context.Background(), bid.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteBid(context.Background(), bid.ID); !errors.Is(err, ledgerdomain.ErrBidNotFound) {
		t.Fatalf("second delete: expected ErrBidNotFound, got %v", err)
	}
	if err := svc.DeleteBid(context.Background(), 0); !errors.Is(err, ledgerdomain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// Serial save/update/delete sequences never leave allocated > total.
func TestConservation_SerialSequence(t *testing.T) {
	const total = 5
	svc, repo := newFixture(t, total)
	ctx := context.Background()

	steps := []func() error{
		func() error { _, _, err := save(t, svc, aliceID, "10", 2); return err },
		func() error { _, _, err := save(t, svc, bobID, "12", 5); return err },
		func() error { _, _, err := save(t, svc, aliceID, "12", 6); return err },
		func() error {
			for id := range repo.bids {
				_, err := svc.UpdateBid(ctx, id, models.BidChange{BidderID: aliceID, QuantityWon: 7})
				return err
			}
			return nil
		},
		func() error {
			for id := range repo.bids {
				_, err := svc.UpdateBid(ctx, id, models.BidChange{BidderID: aliceID, QuantityWon: 1})
				return err
			}
			return nil
		},
		func() error { return svc.DeleteBidByPair(ctx, auctionID, itemID) },
		func() error { _, _, err := save(t, svc, bobID, "9", 5); return err },
		func() error { _, _, err := save(t, svc, bobID, "9", 4); return err },
	}

	for i, step := range steps {
		err := step()
		if err != nil && !errors.Is(err, ledgerdomain.ErrInsufficientInventory) {
			t.Fatalf("step %d: unexpected error %v", i, err)
		}
		if inv := mustInventory(t, svc); inv.AllocatedQuantity > total {
			t.Fatalf("step %d: allocated %d exceeds total %d", i, inv.AllocatedQuantity, total)
		}
	}
}

func TestDatastoreErrorsAreHidden(t *testing.T) {
	var buf bytes.Buffer
	repo := newMemLedger()
	repo.addAuction(auctionID)
	repo.addItem(itemID, 5)
	repo.addBidder(aliceID, "Alice", "Archer")
	repo.failWith = errors.New("pq: connection reset by peer")
	svc := NewLedgerService(repo, repo, nil, logger.NewWithWriter(&buf, "info"), nil)

	_, _, err := save(t, svc, aliceID, "10", 1)
	if !errors.Is(err, ledgerdomain.ErrDatastore) {
		t.Fatalf("expected ErrDatastore, got %v", err)
	}
	if strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("driver error leaked to caller: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not a single JSON record: %v (%s)", err, buf.String())
	}
	if entry["op"] != "save_bid" || !strings.Contains(entry["error"].(string), "connection reset") {
		t.Fatalf("unexpected log record: %v", entry)
	}
	if entry["item_id"] != float64(itemID) {
		t.Fatalf("log record missing item_id: %v", entry)
	}
}

func TestCheckItemInAuction(t *testing.T) {
	svc, _ := newFixture(t, 1)
	ctx := context.Background()

	ok, err := svc.CheckItemInAuction(ctx, itemID, auctionID)
	if err != nil || !ok {
		t.Fatalf("expected enrolled item, got %v / %v", ok, err)
	}
	ok, err = svc.CheckItemInAuction(ctx, 555, auctionID)
	if err != nil || ok {
		t.Fatalf("expected not enrolled, got %v / %v", ok, err)
	}
	if _, err := svc.CheckItemInAuction(ctx, 0, auctionID); !errors.Is(err, ledgerdomain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc, repo := newFixture(t, 5)
	repo.addItem(200, 1)
	repo.enroll(auctionID, 200)
	if _, _, err := save(t, svc, aliceID, "100.10", 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, _, err := svc.SaveBid(context.Background(), SaveBidInput{
		AuctionID: auctionID, ItemID: 200, BidderID: bobID, WinningPrice: decimal.RequireFromString("49.90"), QuantityWon: 1,
	}); err != nil {
		t.Fatalf("save second item: %v", err)
	}

	stats, err := svc.Stats(context.Background(), auctionID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.BidCount != 2 || !stats.TotalRevenue.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestCheckInventory_ReadThroughCache(t *testing.T) {
	repo := newMemLedger()
	repo.addAuction(auctionID)
	repo.addItem(itemID, 10)
	repo.enroll(auctionID, itemID)
	repo.addBidder(aliceID, "Alice", "Archer")
	snapshots := newMemSnapshots()
	svc := NewLedgerService(repo, repo, snapshots, logger.Discard(), nil)

	// Miss: read the repository and fill the cache.
	inv := mustInventory(t, svc)
	if inv.AvailableQuantity != 10 || snapshots.sets != 1 {
		t.Fatalf("unexpected inventory %+v after %d fills", inv, snapshots.sets)
	}

	// Hit: the repository is not consulted.
	snapshots.entries[pairKey{auctionID, itemID}] = pkgcache.CachedInventory{
		AuctionID: auctionID, ItemID: itemID, TotalQuantity: 10, AllocatedQuantity: 7,
	}
	repo.failWith = errors.New("must not be called")

	inv = mustInventory(t, svc)
	if inv.AllocatedQuantity != 7 || inv.AvailableQuantity != 3 {
		t.Fatalf("expected cached snapshot, got %+v", inv)
	}
}

func TestCheckInventory_SlowReadDoesNotCacheStaleSnapshot(t *testing.T) {
	base := newMemLedger()
	base.addAuction(auctionID)
	base.addItem(itemID, 10)
	base.enroll(auctionID, itemID)
	base.addBidder(aliceID, "Alice", "Archer")
	repo := &interleavedLedger{memLedger: base}
	snapshots := newMemSnapshots()
	svc := NewLedgerService(repo, repo, snapshots, logger.Discard(), nil)

	bid, _, err := save(t, svc, aliceID, "10", 4)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// The reader sees 4 allocated; the delete commits and invalidates before
	// the reader gets to fill the cache.
	repo.afterRead = func() {
		if err := svc.DeleteBid(context.Background(), bid.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
	}
	if got := mustInventory(t, svc).AllocatedQuantity; got != 4 {
		t.Fatalf("reader should see its own pre-delete view, got %d", got)
	}
	if _, ok := snapshots.entries[pairKey{auctionID, itemID}]; ok {
		t.Fatal("pre-delete snapshot must not be cached")
	}

	if got := mustInventory(t, svc).AllocatedQuantity; got != 0 {
		t.Fatalf("expected allocated 0 after delete, got %d", got)
	}
}

func TestWritesInvalidateCache(t *testing.T) {
	repo := newMemLedger()
	repo.addAuction(auctionID)
	repo.addItem(itemID, 10)
	repo.enroll(auctionID, itemID)
	repo.addBidder(aliceID, "Alice", "Archer")
	snapshots := newMemSnapshots()
	svc := NewLedgerService(repo, repo, snapshots, logger.Discard(), nil)
	key := pairKey{auctionID, itemID}

	bid, _, err := save(t, svc, aliceID, "10", 1)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.UpdateBid(context.Background(), bid.ID, models.BidChange{BidderID: aliceID, QuantityWon: 2}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if snapshots.gens[key] != 2 {
		t.Fatalf("expected two invalidations, got generation %d", snapshots.gens[key])
	}

	// A failed invalidation does not fail the write.
	snapshots.invalidateErr = errors.New("redis down")
	if err := svc.DeleteBid(context.Background(), bid.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestSaveBid_UnknownItemFailsBeforeWrite(t *testing.T) {
	svc, repo := newFixture(t, 5)
	_, _, err := svc.SaveBid(context.Background(), SaveBidInput{
		AuctionID: auctionID, ItemID: 999, BidderID: aliceID, WinningPrice: decimal.NewFromInt(5), QuantityWon: 1,
	})
	if !errors.Is(err, ledgerdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if len(repo.bids) != 0 {
		t.Fatalf("unknown item must not write, got %d rows", len(repo.bids))
	}
}

func TestSaveBid_ItemNotInAuction(t *testing.T) {
	svc, repo := newFixture(t, 5)
	repo.addItem(300, 2)

	_, _, err := svc.SaveBid(context.Background(), SaveBidInput{
		AuctionID: auctionID, ItemID: 300, BidderID: aliceID, WinningPrice: decimal.NewFromInt(5), QuantityWon: 1,
	})
	if !errors.Is(err, ledgerdomain.ErrAuctionItemNotFound) {
		t.Fatalf("expected ErrAuctionItemNotFound, got %v", err)
	}
}

func TestUpdateBid_UnknownBidder(t *testing.T) {
	svc, _ := newFixture(t, 5)
	bid, _, err := save(t, svc, aliceID, "10", 1)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	_, err = svc.UpdateBid(context.Background(), bid.ID, models.BidChange{BidderID: 404, QuantityWon: 1})
	if !errors.Is(err, ledgerdomain.ErrBidderNotFound) {
		t.Fatalf("expected ErrBidderNotFound, got %v", err)
	}
}

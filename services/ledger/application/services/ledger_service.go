package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/Troubladore/silent-auction-sub001/pkg/cache"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	"github.com/Troubladore/silent-auction-sub001/pkg/telemetry"
	ledgerdomain "github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/repositories"
	domainsvcs "github.com/Troubladore/silent-auction-sub001/services/ledger/domain/services"
)

var tracer = otel.Tracer("silent-auction/ledger")

// SaveBidInput is a request to record the winner of one item in one auction.
type SaveBidInput struct {
	AuctionID    int64
	ItemID       int64
	BidderID     int64
	WinningPrice decimal.Decimal
	QuantityWon  int
}

// InventorySnapshots is the read-through inventory cache. Set must refuse a
// snapshot whose generation was bumped by Invalidate after it was read.
// *cache.InventoryCache implements it on Redis.
type InventorySnapshots interface {
	Get(ctx context.Context, auctionID, itemID int64) (*pkgcache.CachedInventory, error)
	Generation(ctx context.Context, auctionID, itemID int64) (int64, error)
	Set(ctx context.Context, inv *pkgcache.CachedInventory, gen int64) (bool, error)
	Invalidate(ctx context.Context, auctionID, itemID int64) error
}

var _ InventorySnapshots = (*pkgcache.InventoryCache)(nil)

// LedgerService owns winning-bid allocation. Writes go through the
// repository, which locks the item and publishes events (outbox). Inventory
// reads are served from Redis when a cache is configured.
type LedgerService struct {
	bids    repositories.BidRepository
	catalog repositories.CatalogReader
	cache   InventorySnapshots
	log     logger.Logger
	metrics *telemetry.LedgerMetrics
}

// NewLedgerService wires the service. inventoryCache and metrics may be nil.
func NewLedgerService(
	bids repositories.BidRepository,
	catalog repositories.CatalogReader,
	inventoryCache InventorySnapshots,
	log logger.Logger,
	metrics *telemetry.LedgerMetrics,
) *LedgerService {
	return &LedgerService{bids: bids, catalog: catalog, cache: inventoryCache, log: log, metrics: metrics}
}

// CheckInventory reports total, allocated and available quantity of an item
// in an auction with its existing bids, newest first.
func (s *LedgerService) CheckInventory(ctx context.Context, itemID, auctionID int64) (*models.Inventory, error) {
	if itemID <= 0 || auctionID <= 0 {
		return nil, ledgerdomain.Validationf("item_id and auction_id are required")
	}

	ctx, span := tracer.Start(ctx, "ledger.CheckInventory", trace.WithAttributes(
		attribute.Int64("item_id", itemID),
		attribute.Int64("auction_id", auctionID),
	))
	defer span.End()

	if inv, ok := s.cachedInventory(ctx, auctionID, itemID); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return inv, nil
	}

	// The generation is read before the database so a write landing in
	// between makes the fill below a no-op.
	gen, cacheable := s.cacheGeneration(ctx, auctionID, itemID)

	alloc, bids, err := s.bids.Inventory(ctx, auctionID, itemID)
	if err != nil {
		return nil, s.fail(ctx, span, "check_inventory", err, "item_id", itemID, "auction_id", auctionID)
	}

	inv := domainsvcs.BuildInventory(alloc, bids)
	if cacheable {
		s.storeInventory(ctx, alloc, bids, gen)
	}
	return inv, nil
}

// SaveBid records the winner of a pair, replacing any previous winner, and
// returns the auction's running totals. Unknown items and bidders fail with
// NotFound before the item row is locked.
//
// Unlike a bare overwrite, growing the quantity of the pair is checked
// against the item's free stock inside the write transaction, counting the
// replaced row's units as free; a same-size or smaller overwrite is always
// accepted.
func (s *LedgerService) SaveBid(ctx context.Context, in SaveBidInput) (*models.WinningBid, models.AuctionStats, error) {
	bid, err := models.NewWinningBid(in.AuctionID, in.ItemID, in.BidderID, in.WinningPrice, in.QuantityWon)
	if err != nil {
		return nil, models.AuctionStats{}, fmt.Errorf("%w: %w", ledgerdomain.ErrValidation, err)
	}

	ctx, span := tracer.Start(ctx, "ledger.SaveBid", trace.WithAttributes(
		attribute.Int64("auction_id", in.AuctionID),
		attribute.Int64("item_id", in.ItemID),
		attribute.Int("quantity_won", in.QuantityWon),
	))
	defer span.End()

	failSave := func(err error) error {
		s.metrics.BidWrite(ctx, "save", outcome(err))
		return s.fail(ctx, span, "save_bid", err,
			"auction_id", in.AuctionID, "item_id", in.ItemID, "bidder_id", in.BidderID)
	}

	item, err := s.catalog.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, models.AuctionStats{}, failSave(err)
	}
	bidder, err := s.catalog.GetBidder(ctx, in.BidderID)
	if err != nil {
		return nil, models.AuctionStats{}, failSave(err)
	}

	saved, err := s.bids.Upsert(ctx, bid, domainsvcs.CheckQuantityChange)
	if err != nil {
		return nil, models.AuctionStats{}, failSave(err)
	}
	s.metrics.BidWrite(ctx, "save", telemetry.OutcomeOK)
	s.invalidate(ctx, saved.AuctionID, saved.ItemID)

	stats, err := s.bids.Stats(ctx, saved.AuctionID)
	if err != nil {
		return nil, models.AuctionStats{}, s.fail(ctx, span, "auction_stats", err, "auction_id", saved.AuctionID)
	}

	s.log.InfoContext(ctx, "winning bid saved",
		"bid_id", saved.ID, "auction_id", saved.AuctionID, "item_id", saved.ItemID, "item_name", item.Name,
		"bidder_id", saved.BidderID, "bidder_name", bidder.DisplayName(), "quantity_won", saved.QuantityWon)
	return saved, stats, nil
}

// UpdateBid changes bidder, quantity and optionally price of an existing bid.
// Only increases are checked against stock, counting the bid's own old
// quantity as available to it.
func (s *LedgerService) UpdateBid(ctx context.Context, bidID int64, change models.BidChange) (*models.WinningBid, error) {
	if bidID <= 0 {
		return nil, ledgerdomain.Validationf("bid_id is required")
	}
	if err := change.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ledgerdomain.ErrValidation, err)
	}

	ctx, span := tracer.Start(ctx, "ledger.UpdateBid", trace.WithAttributes(
		attribute.Int64("bid_id", bidID),
		attribute.Int("quantity_won", change.QuantityWon),
	))
	defer span.End()

	bidder, err := s.catalog.GetBidder(ctx, change.BidderID)
	if err != nil {
		s.metrics.BidWrite(ctx, "update", outcome(err))
		return nil, s.fail(ctx, span, "update_bid", err, "bid_id", bidID, "bidder_id", change.BidderID)
	}

	saved, err := s.bids.Update(ctx, bidID, change, domainsvcs.CheckQuantityChange)
	if err != nil {
		s.metrics.BidWrite(ctx, "update", outcome(err))
		return nil, s.fail(ctx, span, "update_bid", err, "bid_id", bidID, "bidder_id", change.BidderID)
	}
	s.metrics.BidWrite(ctx, "update", telemetry.OutcomeOK)
	s.invalidate(ctx, saved.AuctionID, saved.ItemID)

	s.log.InfoContext(ctx, "winning bid updated",
		"bid_id", saved.ID, "bidder_id", saved.BidderID, "bidder_name", bidder.DisplayName(),
		"quantity_won", saved.QuantityWon)
	return saved, nil
}

// DeleteBidByPair removes the winner of a pair. Deleting a pair without a
// bid succeeds.
func (s *LedgerService) DeleteBidByPair(ctx context.Context, auctionID, itemID int64) error {
	if auctionID <= 0 || itemID <= 0 {
		return ledgerdomain.Validationf("auction_id and item_id are required")
	}

	ctx, span := tracer.Start(ctx, "ledger.DeleteBidByPair", trace.WithAttributes(
		attribute.Int64("auction_id", auctionID),
		attribute.Int64("item_id", itemID),
	))
	defer span.End()

	_, removed, err := s.bids.DeleteByPair(ctx, auctionID, itemID)
	if err != nil {
		s.metrics.BidWrite(ctx, "delete", outcome(err))
		return s.fail(ctx, span, "delete_bid_by_pair", err, "auction_id", auctionID, "item_id", itemID)
	}
	s.metrics.BidWrite(ctx, "delete", telemetry.OutcomeOK)
	s.invalidate(ctx, auctionID, itemID)

	s.log.InfoContext(ctx, "winning bid deleted",
		"auction_id", auctionID, "item_id", itemID, "removed", removed)
	return nil
}

// DeleteBid removes a bid by ID. Returns ErrBidNotFound when absent.
func (s *LedgerService) DeleteBid(ctx context.Context, bidID int64) error {
	if bidID <= 0 {
		return ledgerdomain.Validationf("bid_id is required")
	}

	ctx, span := tracer.Start(ctx, "ledger.DeleteBid", trace.WithAttributes(attribute.Int64("bid_id", bidID)))
	defer span.End()

	removed, err := s.bids.DeleteByID(ctx, bidID)
	if err != nil {
		s.metrics.BidWrite(ctx, "delete", outcome(err))
		return s.fail(ctx, span, "delete_bid", err, "bid_id", bidID)
	}
	s.metrics.BidWrite(ctx, "delete", telemetry.OutcomeOK)
	s.invalidate(ctx, removed.AuctionID, removed.ItemID)

	s.log.InfoContext(ctx, "winning bid deleted", "bid_id", bidID,
		"auction_id", removed.AuctionID, "item_id", removed.ItemID)
	return nil
}

// CheckItemInAuction reports whether the item is enrolled in the auction.
func (s *LedgerService) CheckItemInAuction(ctx context.Context, itemID, auctionID int64) (bool, error) {
	if itemID <= 0 || auctionID <= 0 {
		return false, ledgerdomain.Validationf("item_id and auction_id are required")
	}
	ok, err := s.catalog.ItemInAuction(ctx, itemID, auctionID)
	if err != nil {
		return false, s.fail(ctx, nil, "check_item_in_auction", err, "item_id", itemID, "auction_id", auctionID)
	}
	return ok, nil
}

// Stats returns the auction's revenue (sum of winning prices) and bid count.
func (s *LedgerService) Stats(ctx context.Context, auctionID int64) (models.AuctionStats, error) {
	if auctionID <= 0 {
		return models.AuctionStats{}, ledgerdomain.Validationf("auction_id is required")
	}
	stats, err := s.bids.Stats(ctx, auctionID)
	if err != nil {
		return models.AuctionStats{}, s.fail(ctx, nil, "auction_stats", err, "auction_id", auctionID)
	}
	return stats, nil
}

// fail passes domain errors through and hides everything else behind
// ErrDatastore after logging it with op and the given identifiers.
func (s *LedgerService) fail(ctx context.Context, span trace.Span, op string, err error, ids ...any) error {
	if isDomainError(err) {
		if span != nil {
			span.SetAttributes(attribute.String("ledger.rejection", err.Error()))
		}
		return err
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op)
	}
	s.log.ErrorContext(ctx, "ledger datastore failure", append([]any{"op", op, "error", err}, ids...)...)
	telemetry.CaptureError(ctx, err, map[string]string{"op": op})
	return fmt.Errorf("%s: %w", op, ledgerdomain.ErrDatastore)
}

func (s *LedgerService) cachedInventory(ctx context.Context, auctionID, itemID int64) (*models.Inventory, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, auctionID, itemID)
	if err != nil {
		if !errors.Is(err, pkgcache.ErrMiss) {
			s.log.WarnContext(ctx, "inventory cache read failed", "error", err,
				"auction_id", auctionID, "item_id", itemID)
		}
		s.metrics.CacheLookup(ctx, false)
		return nil, false
	}
	s.metrics.CacheLookup(ctx, true)

	bids := make([]models.BidSummary, len(cached.Bids))
	for i, b := range cached.Bids {
		bids[i] = models.BidSummary{
			BidID:        b.BidID,
			BidderID:     b.BidderID,
			BidderName:   b.BidderName,
			WinningPrice: b.WinningPrice,
			QuantityWon:  b.QuantityWon,
			CreatedAt:    b.CreatedAt,
			UpdatedAt:    b.UpdatedAt,
		}
	}
	return domainsvcs.BuildInventory(models.Allocation{
		AuctionID:         cached.AuctionID,
		ItemID:            cached.ItemID,
		TotalQuantity:     cached.TotalQuantity,
		AllocatedQuantity: cached.AllocatedQuantity,
	}, bids), true
}

func (s *LedgerService) cacheGeneration(ctx context.Context, auctionID, itemID int64) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx, auctionID, itemID)
	if err != nil {
		s.log.WarnContext(ctx, "inventory cache generation read failed", "error", err,
			"auction_id", auctionID, "item_id", itemID)
		return 0, false
	}
	return gen, true
}

func (s *LedgerService) storeInventory(ctx context.Context, alloc models.Allocation, bids []models.BidSummary, gen int64) {
	entry := &pkgcache.CachedInventory{
		AuctionID:         alloc.AuctionID,
		ItemID:            alloc.ItemID,
		TotalQuantity:     alloc.TotalQuantity,
		AllocatedQuantity: alloc.AllocatedQuantity,
		Bids:              make([]pkgcache.CachedBid, len(bids)),
	}
	for i, b := range bids {
		entry.Bids[i] = pkgcache.CachedBid{
			BidID:        b.BidID,
			BidderID:     b.BidderID,
			BidderName:   b.BidderName,
			WinningPrice: b.WinningPrice,
			QuantityWon:  b.QuantityWon,
			CreatedAt:    b.CreatedAt,
			UpdatedAt:    b.UpdatedAt,
		}
	}
	stored, err := s.cache.Set(ctx, entry, gen)
	if err != nil {
		s.log.WarnContext(ctx, "inventory cache write failed", "error", err,
			"auction_id", alloc.AuctionID, "item_id", alloc.ItemID)
		return
	}
	if !stored {
		s.log.DebugContext(ctx, "inventory snapshot superseded by a write",
			"auction_id", alloc.AuctionID, "item_id", alloc.ItemID, "generation", gen)
	}
}

// invalidate drops the cached snapshot. The worker repeats this on the bid
// event, so a failure here only delays freshness.
func (s *LedgerService) invalidate(ctx context.Context, auctionID, itemID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, auctionID, itemID); err != nil {
		s.log.WarnContext(ctx, "inventory cache invalidation failed", "error", err,
			"auction_id", auctionID, "item_id", itemID)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, ledgerdomain.ErrValidation) ||
		errors.Is(err, ledgerdomain.ErrNotFound) ||
		errors.Is(err, ledgerdomain.ErrInsufficientInventory)
}

func outcome(err error) string {
	if isDomainError(err) {
		return telemetry.OutcomeRejected
	}
	return telemetry.OutcomeError
}

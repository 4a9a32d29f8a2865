package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Troubladore/silent-auction-sub001/pkg/database"
	"github.com/Troubladore/silent-auction-sub001/pkg/events"
	ledgerdomain "github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
	domainevents "github.com/Troubladore/silent-auction-sub001/services/ledger/domain/events"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/repositories"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/infrastructure/persistence/postgres/db"
)

// BidRepository implements repositories.BidRepository and
// repositories.CatalogReader against PostgreSQL.
//
// Every write locks the item row first (SELECT ... FOR UPDATE) so concurrent
// stations editing the same item serialize on it, and publishes its event
// through the outbox inside the same transaction.
type BidRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var (
	_ repositories.BidRepository = (*BidRepository)(nil)
	_ repositories.CatalogReader = (*BidRepository)(nil)
)

// NewBidRepository returns a BidRepository. bus may be nil, in which case no
// events are published.
func NewBidRepository(database *database.Database, bus *events.EventBus) *BidRepository {
	return &BidRepository{db: database, bus: bus}
}

// Inventory reads the allocation of a pair outside any transaction.
func (r *BidRepository) Inventory(ctx context.Context, auctionID, itemID int64) (models.Allocation, []models.BidSummary, error) {
	iid, ok := narrow(itemID)
	if !ok {
		return models.Allocation{}, nil, ledgerdomain.ErrItemNotFound
	}
	aid, ok := narrow(auctionID)
	if !ok {
		return models.Allocation{}, nil, ledgerdomain.ErrAuctionNotFound
	}

	q := db.New(r.db.DB())
	item, err := q.GetItem(ctx, iid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Allocation{}, nil, ledgerdomain.ErrItemNotFound
		}
		return models.Allocation{}, nil, fmt.Errorf("query item: %w", err)
	}

	allocated, err := q.SumAllocated(ctx, db.SumAllocatedParams{AuctionID: aid, ItemID: iid})
	if err != nil {
		return models.Allocation{}, nil, fmt.Errorf("sum allocated: %w", err)
	}

	rows, err := q.ListBidsForPair(ctx, db.ListBidsForPairParams{AuctionID: aid, ItemID: iid})
	if err != nil {
		return models.Allocation{}, nil, fmt.Errorf("list bids: %w", err)
	}

	bids := make([]models.BidSummary, len(rows))
	for i, row := range rows {
		bids[i] = models.BidSummary{
			BidID:        int64(row.BidID),
			BidderID:     int64(row.BidderID),
			BidderName:   models.DisplayName(row.FirstName, row.LastName),
			WinningPrice: row.WinningPrice,
			QuantityWon:  int(row.QuantityWon),
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		}
	}

	return models.Allocation{
		AuctionID:         auctionID,
		ItemID:            itemID,
		TotalQuantity:     int(item.ItemQuantity),
		AllocatedQuantity: int(allocated),
	}, bids, nil
}

// Upsert writes bid as the winner of its pair. The guard sees the quantity of
// the row being replaced so a same-size overwrite never fails.
func (r *BidRepository) Upsert(ctx context.Context, bid *models.WinningBid, guard repositories.QuantityGuard) (*models.WinningBid, error) {
	aid, ok := narrow(bid.AuctionID)
	if !ok {
		return nil, ledgerdomain.ErrAuctionNotFound
	}
	iid, ok := narrow(bid.ItemID)
	if !ok {
		return nil, ledgerdomain.ErrItemNotFound
	}
	bidder, ok := narrow(bid.BidderID)
	if !ok {
		return nil, ledgerdomain.ErrBidderNotFound
	}

	var saved *models.WinningBid
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)

		alloc, err := lockAllocation(ctx, q, aid, iid)
		if err != nil {
			return err
		}

		oldQty := 0
		existing, err := q.GetBidByPairForUpdate(ctx, db.GetBidByPairForUpdateParams{AuctionID: aid, ItemID: iid})
		switch {
		case err == nil:
			oldQty = int(existing.QuantityWon)
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("query existing bid: %w", err)
		}

		if guard != nil {
			if err := guard(alloc, oldQty, bid.QuantityWon); err != nil {
				return err
			}
		}

		row, err := q.UpsertBid(ctx, db.UpsertBidParams{
			AuctionID:    aid,
			ItemID:       iid,
			BidderID:     bidder,
			WinningPrice: bid.WinningPrice,
			QuantityWon:  int32(bid.QuantityWon), //nolint:gosec // validated >= 1 and bounded by item_quantity
		})
		if err != nil {
			return mapWriteError("upsert bid", err)
		}
		saved = rowToBid(row)

		return r.publishBid(ctx, tx, domainevents.TopicBidSaved, saved)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Update applies change to an existing bid. The bid is looked up once to find
// its item, then re-read under lock after the item row is locked.
func (r *BidRepository) Update(ctx context.Context, bidID int64, change models.BidChange, guard repositories.QuantityGuard) (*models.WinningBid, error) {
	id, ok := narrow(bidID)
	if !ok {
		return nil, ledgerdomain.ErrBidNotFound
	}
	bidder, ok := narrow(change.BidderID)
	if !ok {
		return nil, ledgerdomain.ErrBidderNotFound
	}

	var saved *models.WinningBid
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)

		current, err := q.GetBidByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ledgerdomain.ErrBidNotFound
			}
			return fmt.Errorf("query bid: %w", err)
		}

		alloc, err := lockAllocation(ctx, q, current.AuctionID, current.ItemID)
		if err != nil {
			return err
		}

		current, err = q.GetBidByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ledgerdomain.ErrBidNotFound
			}
			return fmt.Errorf("lock bid: %w", err)
		}

		if guard != nil {
			if err := guard(alloc, int(current.QuantityWon), change.QuantityWon); err != nil {
				return err
			}
		}

		bid := rowToBid(current)
		bid.Apply(change)

		row, err := q.UpdateBid(ctx, db.UpdateBidParams{
			BidID:        id,
			BidderID:     bidder,
			WinningPrice: bid.WinningPrice,
			QuantityWon:  int32(bid.QuantityWon), //nolint:gosec // validated >= 1 and bounded by item_quantity
		})
		if err != nil {
			return mapWriteError("update bid", err)
		}
		saved = rowToBid(row)

		return r.publishBid(ctx, tx, domainevents.TopicBidUpdated, saved)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteByPair removes the bid for a pair if one exists.
func (r *BidRepository) DeleteByPair(ctx context.Context, auctionID, itemID int64) (*models.WinningBid, bool, error) {
	aid, okA := narrow(auctionID)
	iid, okI := narrow(itemID)
	if !okA || !okI {
		return nil, false, nil
	}

	var removed *models.WinningBid
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).DeleteBidByPair(ctx, db.DeleteBidByPairParams{AuctionID: aid, ItemID: iid})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("delete bid by pair: %w", err)
		}
		removed = rowToBid(row)
		return r.publishBid(ctx, tx, domainevents.TopicBidDeleted, removed)
	})
	if err != nil {
		return nil, false, err
	}
	return removed, removed != nil, nil
}

// DeleteByID removes a bid. Returns ErrBidNotFound when absent.
func (r *BidRepository) DeleteByID(ctx context.Context, bidID int64) (*models.WinningBid, error) {
	id, ok := narrow(bidID)
	if !ok {
		return nil, ledgerdomain.ErrBidNotFound
	}

	var removed *models.WinningBid
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).DeleteBidByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ledgerdomain.ErrBidNotFound
			}
			return fmt.Errorf("delete bid: %w", err)
		}
		removed = rowToBid(row)
		return r.publishBid(ctx, tx, domainevents.TopicBidDeleted, removed)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Stats returns SUM(winning_price) and COUNT(*) for an auction.
func (r *BidRepository) Stats(ctx context.Context, auctionID int64) (models.AuctionStats, error) {
	aid, ok := narrow(auctionID)
	if !ok {
		return models.AuctionStats{AuctionID: auctionID}, nil
	}
	row, err := db.New(r.db.DB()).AuctionStats(ctx, aid)
	if err != nil {
		return models.AuctionStats{}, fmt.Errorf("auction stats: %w", err)
	}
	return models.AuctionStats{
		AuctionID:    auctionID,
		TotalRevenue: row.TotalRevenue,
		BidCount:     int(row.BidCount),
	}, nil
}

// GetItem returns the catalog item. Returns ErrItemNotFound if absent.
func (r *BidRepository) GetItem(ctx context.Context, itemID int64) (*models.Item, error) {
	id, ok := narrow(itemID)
	if !ok {
		return nil, ledgerdomain.ErrItemNotFound
	}
	row, err := db.New(r.db.DB()).GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return &models.Item{
		ID:          int64(row.ItemID),
		Name:        row.ItemName,
		Description: row.ItemDescription,
		Quantity:    int(row.ItemQuantity),
		CreatedAt:   row.CreatedAt,
	}, nil
}

// GetBidder returns the bidder name fields. Returns ErrBidderNotFound if absent.
func (r *BidRepository) GetBidder(ctx context.Context, bidderID int64) (*models.Bidder, error) {
	id, ok := narrow(bidderID)
	if !ok {
		return nil, ledgerdomain.ErrBidderNotFound
	}
	row, err := db.New(r.db.DB()).GetBidder(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerdomain.ErrBidderNotFound
		}
		return nil, fmt.Errorf("query bidder: %w", err)
	}
	return &models.Bidder{ID: int64(row.BidderID), FirstName: row.FirstName, LastName: row.LastName}, nil
}

// ItemInAuction reports whether the item is associated with the auction.
func (r *BidRepository) ItemInAuction(ctx context.Context, itemID, auctionID int64) (bool, error) {
	iid, okI := narrow(itemID)
	aid, okA := narrow(auctionID)
	if !okI || !okA {
		return false, nil
	}
	ok, err := db.New(r.db.DB()).ItemInAuction(ctx, db.ItemInAuctionParams{ItemID: iid, AuctionID: aid})
	if err != nil {
		return false, fmt.Errorf("check item in auction: %w", err)
	}
	return ok, nil
}

// lockAllocation locks the item row and sums the quantity already won for
// the pair.
func lockAllocation(ctx context.Context, q *db.Queries, auctionID, itemID int32) (models.Allocation, error) {
	item, err := q.LockItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Allocation{}, ledgerdomain.ErrItemNotFound
		}
		return models.Allocation{}, fmt.Errorf("lock item: %w", err)
	}
	allocated, err := q.SumAllocated(ctx, db.SumAllocatedParams{AuctionID: auctionID, ItemID: itemID})
	if err != nil {
		return models.Allocation{}, fmt.Errorf("sum allocated: %w", err)
	}
	return models.Allocation{
		AuctionID:         int64(auctionID),
		ItemID:            int64(itemID),
		TotalQuantity:     int(item.ItemQuantity),
		AllocatedQuantity: int(allocated),
	}, nil
}

func (r *BidRepository) publishBid(ctx context.Context, tx *sql.Tx, topic string, bid *models.WinningBid) error {
	if r.bus == nil {
		return nil
	}
	event := domainevents.BidChangedEvent{
		EventID:      uuid.New(),
		Version:      1,
		BidID:        bid.ID,
		AuctionID:    bid.AuctionID,
		ItemID:       bid.ItemID,
		BidderID:     bid.BidderID,
		WinningPrice: bid.WinningPrice,
		QuantityWon:  bid.QuantityWon,
		OccurredAt:   time.Now().UTC(),
	}
	if err := r.bus.PublishInTx(ctx, tx, topic, event.EventID.String(), event); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// rowToBid maps a db.WinningBid to a domain models.WinningBid.
func rowToBid(row db.WinningBid) *models.WinningBid {
	return &models.WinningBid{
		ID:           int64(row.BidID),
		AuctionID:    int64(row.AuctionID),
		ItemID:       int64(row.ItemID),
		BidderID:     int64(row.BidderID),
		WinningPrice: row.WinningPrice,
		QuantityWon:  int(row.QuantityWon),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

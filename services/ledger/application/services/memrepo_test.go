package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	pkgcache "github.com/Troubladore/silent-auction-sub001/pkg/cache"
	ledgerdomain "github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/repositories"
)

type pairKey struct{ auctionID, itemID int64 }

// memLedger is an in-memory BidRepository and CatalogReader. It holds one
// mutex across each write, standing in for the item row lock.
type memLedger struct {
	mu       sync.Mutex
	items    map[int64]int // item_id -> total quantity
	bidders  map[int64]models.Bidder
	auctions map[int64]bool
	enrolled map[pairKey]bool
	bids     map[int64]*models.WinningBid
	nextID   int64
	clock    time.Time
	failWith error // returned by every call when set
}

func newMemLedger() *memLedger {
	return &memLedger{
		items:    map[int64]int{},
		bidders:  map[int64]models.Bidder{},
		auctions: map[int64]bool{},
		enrolled: map[pairKey]bool{},
		bids:     map[int64]*models.WinningBid{},
		clock:    time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC),
	}
}

func (m *memLedger) addItem(id int64, qty int) { m.items[id] = qty }

func (m *memLedger) addBidder(id int64, first, last string) {
	m.bidders[id] = models.Bidder{ID: id, FirstName: first, LastName: last}
}

func (m *memLedger) addAuction(id int64) { m.auctions[id] = true }

func (m *memLedger) enroll(auctionID, itemID int64) {
	m.enrolled[pairKey{auctionID, itemID}] = true
}

// seedBid inserts a row directly, bypassing the allocation check, to model
// over-allocated legacy data.
func (m *memLedger) seedBid(auctionID, itemID, bidderID int64, qty int) *models.WinningBid {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	b := &models.WinningBid{
		ID: m.nextID, AuctionID: auctionID, ItemID: itemID, BidderID: bidderID,
		WinningPrice: decimal.NewFromInt(10), QuantityWon: qty, CreatedAt: m.clock, UpdatedAt: m.clock,
	}
	m.bids[b.ID] = b
	return b
}

func (m *memLedger) rowsForPair(auctionID, itemID int64) []*models.WinningBid {
	var rows []*models.WinningBid
	for _, b := range m.bids {
		if b.AuctionID == auctionID && b.ItemID == itemID {
			rows = append(rows, b)
		}
	}
	return rows
}

func (m *memLedger) allocation(auctionID, itemID int64) (models.Allocation, error) {
	total, ok := m.items[itemID]
	if !ok {
		return models.Allocation{}, ledgerdomain.ErrItemNotFound
	}
	sum := 0
	for _, b := range m.rowsForPair(auctionID, itemID) {
		sum += b.QuantityWon
	}
	return models.Allocation{AuctionID: auctionID, ItemID: itemID, TotalQuantity: total, AllocatedQuantity: sum}, nil
}

func (m *memLedger) Inventory(_ context.Context, auctionID, itemID int64) (models.Allocation, []models.BidSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return models.Allocation{}, nil, m.failWith
	}
	alloc, err := m.allocation(auctionID, itemID)
	if err != nil {
		return models.Allocation{}, nil, err
	}
	rows := m.rowsForPair(auctionID, itemID)
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	bids := make([]models.BidSummary, len(rows))
	for i, b := range rows {
		bids[i] = models.BidSummary{
			BidID: b.ID, BidderID: b.BidderID, BidderName: m.bidders[b.BidderID].DisplayName(),
			WinningPrice: b.WinningPrice, QuantityWon: b.QuantityWon, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
		}
	}
	return alloc, bids, nil
}

func (m *memLedger) Upsert(_ context.Context, bid *models.WinningBid, guard repositories.QuantityGuard) (*models.WinningBid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	alloc, err := m.allocation(bid.AuctionID, bid.ItemID)
	if err != nil {
		return nil, err
	}
	if !m.auctions[bid.AuctionID] {
		return nil, ledgerdomain.ErrAuctionNotFound
	}
	if !m.enrolled[pairKey{bid.AuctionID, bid.ItemID}] {
		return nil, ledgerdomain.ErrAuctionItemNotFound
	}
	if _, ok := m.bidders[bid.BidderID]; !ok {
		return nil, ledgerdomain.ErrBidderNotFound
	}

	var existing *models.WinningBid
	if rows := m.rowsForPair(bid.AuctionID, bid.ItemID); len(rows) > 0 {
		existing = rows[0]
	}
	oldQty := 0
	if existing != nil {
		oldQty = existing.QuantityWon
	}
	if err := guard(alloc, oldQty, bid.QuantityWon); err != nil {
		return nil, err
	}

	m.clock = m.clock.Add(time.Minute)
	if existing != nil {
		existing.BidderID = bid.BidderID
		existing.WinningPrice = bid.WinningPrice
		existing.QuantityWon = bid.QuantityWon
		existing.UpdatedAt = m.clock
		cp := *existing
		return &cp, nil
	}
	m.nextID++
	row := *bid
	row.ID = m.nextID
	row.CreatedAt, row.UpdatedAt = m.clock, m.clock
	m.bids[row.ID] = &row
	cp := row
	return &cp, nil
}

func (m *memLedger) Update(_ context.Context, bidID int64, change models.BidChange, guard repositories.QuantityGuard) (*models.WinningBid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	row, ok := m.bids[bidID]
	if !ok {
		return nil, ledgerdomain.ErrBidNotFound
	}
	if _, ok := m.bidders[change.BidderID]; !ok {
		return nil, ledgerdomain.ErrBidderNotFound
	}
	alloc, err := m.allocation(row.AuctionID, row.ItemID)
	if err != nil {
		return nil, err
	}
	if err := guard(alloc, row.QuantityWon, change.QuantityWon); err != nil {
		return nil, err
	}
	row.Apply(change)
	cp := *row
	return &cp, nil
}

func (m *memLedger) DeleteByPair(_ context.Context, auctionID, itemID int64) (*models.WinningBid, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, false, m.failWith
	}
	rows := m.rowsForPair(auctionID, itemID)
	if len(rows) == 0 {
		return nil, false, nil
	}
	for _, b := range rows {
		delete(m.bids, b.ID)
	}
	return rows[0], true, nil
}

func (m *memLedger) DeleteByID(_ context.Context, bidID int64) (*models.WinningBid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	row, ok := m.bids[bidID]
	if !ok {
		return nil, ledgerdomain.ErrBidNotFound
	}
	delete(m.bids, bidID)
	return row, nil
}

func (m *memLedger) Stats(_ context.Context, auctionID int64) (models.AuctionStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return models.AuctionStats{}, m.failWith
	}
	stats := models.AuctionStats{AuctionID: auctionID, TotalRevenue: decimal.Zero}
	for _, b := range m.bids {
		if b.AuctionID == auctionID {
			stats.TotalRevenue = stats.TotalRevenue.Add(b.WinningPrice)
			stats.BidCount++
		}
	}
	return stats, nil
}

func (m *memLedger) GetItem(_ context.Context, itemID int64) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	qty, ok := m.items[itemID]
	if !ok {
		return nil, ledgerdomain.ErrItemNotFound
	}
	return &models.Item{ID: itemID, Quantity: qty}, nil
}

func (m *memLedger) GetBidder(_ context.Context, bidderID int64) (*models.Bidder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	b, ok := m.bidders[bidderID]
	if !ok {
		return nil, ledgerdomain.ErrBidderNotFound
	}
	return &b, nil
}

func (m *memLedger) ItemInAuction(_ context.Context, itemID, auctionID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	return m.enrolled[pairKey{auctionID, itemID}], nil
}

// memPayments is an in-memory PaymentRepository.
type memPayments struct {
	mu       sync.Mutex
	rows     []*models.Payment
	bidders  map[int64]bool
	failWith error
}

func (m *memPayments) Save(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if !m.bidders[p.BidderID] {
		return ledgerdomain.ErrBidderNotFound
	}
	p.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, p)
	return nil
}

func (m *memPayments) ListByBidder(_ context.Context, bidderID int64) ([]*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []*models.Payment{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].BidderID == bidderID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

// memSnapshots is an in-memory InventorySnapshots with the same generation
// rule as the Redis script.
type memSnapshots struct {
	mu            sync.Mutex
	entries       map[pairKey]pkgcache.CachedInventory
	gens          map[pairKey]int64
	gets, sets    int
	invalidateErr error
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{entries: map[pairKey]pkgcache.CachedInventory{}, gens: map[pairKey]int64{}}
}

func (c *memSnapshots) Get(_ context.Context, auctionID, itemID int64) (*pkgcache.CachedInventory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	inv, ok := c.entries[pairKey{auctionID, itemID}]
	if !ok {
		return nil, pkgcache.ErrMiss
	}
	return &inv, nil
}

func (c *memSnapshots) Generation(_ context.Context, auctionID, itemID int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[pairKey{auctionID, itemID}], nil
}

func (c *memSnapshots) Set(_ context.Context, inv *pkgcache.CachedInventory, gen int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := pairKey{inv.AuctionID, inv.ItemID}
	if c.gens[key] != gen {
		return false, nil
	}
	c.sets++
	c.entries[key] = *inv
	return true, nil
}

func (c *memSnapshots) Invalidate(_ context.Context, auctionID, itemID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	key := pairKey{auctionID, itemID}
	c.gens[key]++
	delete(c.entries, key)
	return nil
}

// interleavedLedger runs afterRead once, between the inventory query and the
// return to the service, to model a write committing during a slow read.
type interleavedLedger struct {
	*memLedger
	afterRead func()
}

func (l *interleavedLedger) Inventory(ctx context.Context, auctionID, itemID int64) (models.Allocation, []models.BidSummary, error) {
	alloc, bids, err := l.memLedger.Inventory(ctx, auctionID, itemID)
	if l.afterRead != nil {
		hook := l.afterRead
		l.afterRead = nil
		hook()
	}
	return alloc, bids, err
}

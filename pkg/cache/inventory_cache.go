package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// DefaultInventoryTTL bounds staleness when an invalidation is lost.
	DefaultInventoryTTL = 30 * time.Second

	inventoryKeyPrefix  = "inventory"
	generationKeyPrefix = "inventory_gen"
)

// ErrMiss is returned by Get when no snapshot is stored for the pair.
var ErrMiss = errors.New("cache miss")

// CachedBid is one existing bid inside a cached inventory snapshot.
type CachedBid struct {
	BidID        int64           `json:"bid_id"`
	BidderID     int64           `json:"bidder_id"`
	BidderName   string          `json:"bidder_name"`
	WinningPrice decimal.Decimal `json:"winning_price"`
	QuantityWon  int             `json:"quantity_won"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CachedInventory is the read model stored for an (auction, item) pair.
type CachedInventory struct {
	AuctionID         int64       `json:"auction_id"`
	ItemID            int64       `json:"item_id"`
	TotalQuantity     int         `json:"total_quantity"`
	AllocatedQuantity int         `json:"allocated_quantity"`
	Bids              []CachedBid `json:"bids"`
}

// InventoryCache stores inventory snapshots as JSON strings.
// Key format: "inventory:{auctionID}:{itemID}", with a write counter at
// "inventory_gen:{auctionID}:{itemID}".
type InventoryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewInventoryCache returns a cache on rdb. A non-positive ttl uses
// DefaultInventoryTTL.
func NewInventoryCache(rdb *redis.Client, ttl time.Duration) *InventoryCache {
	if ttl <= 0 {
		ttl = DefaultInventoryTTL
	}
	return &InventoryCache{rdb: rdb, ttl: ttl}
}

// Get returns the snapshot for a pair or ErrMiss.
func (c *InventoryCache) Get(ctx context.Context, auctionID, itemID int64) (*CachedInventory, error) {
	raw, err := c.rdb.Get(ctx, InventoryKey(auctionID, itemID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var inv CachedInventory
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &inv, nil
}

// storeIfCurrent writes the snapshot only while the pair's generation still
// equals the one read before the snapshot was built.
//
// KEYS[1] snapshot key, KEYS[2] generation key
// ARGV[1] snapshot, ARGV[2] expected generation, ARGV[3] ttl in ms
var storeIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[2] then
    return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// Generation returns the write counter of a pair; 0 when no write has been
// seen yet. Read it before loading the snapshot from the database and pass
// it to Set.
func (c *InventoryCache) Generation(ctx context.Context, auctionID, itemID int64) (int64, error) {
	gen, err := c.rdb.Get(ctx, GenerationKey(auctionID, itemID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Set stores a snapshot built at generation gen with the configured TTL.
// It reports false without writing when a write to the pair bumped the
// generation in the meantime, so a slow reader cannot cache a pre-write view.
func (c *InventoryCache) Set(ctx context.Context, inv *CachedInventory, gen int64) (bool, error) {
	data, err := json.Marshal(inv)
	if err != nil {
		return false, fmt.Errorf("cache encode: %w", err)
	}
	keys := []string{InventoryKey(inv.AuctionID, inv.ItemID), GenerationKey(inv.AuctionID, inv.ItemID)}
	stored, err := storeIfCurrent.Run(ctx, c.rdb, keys, string(data), gen, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return stored == 1, nil
}

// Invalidate bumps the pair's generation and drops its snapshot. Missing
// keys are not an error.
func (c *InventoryCache) Invalidate(ctx context.Context, auctionID, itemID int64) error {
	if err := c.rdb.Incr(ctx, GenerationKey(auctionID, itemID)).Err(); err != nil {
		return fmt.Errorf("cache generation bump: %w", err)
	}
	if err := c.rdb.Del(ctx, InventoryKey(auctionID, itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// InventoryKey builds the Redis key for a pair.
func InventoryKey(auctionID, itemID int64) string {
	return fmt.Sprintf("%s:%d:%d", inventoryKeyPrefix, auctionID, itemID)
}

// GenerationKey builds the Redis key of a pair's write counter.
func GenerationKey(auctionID, itemID int64) string {
	return fmt.Sprintf("%s:%d:%d", generationKeyPrefix, auctionID, itemID)
}

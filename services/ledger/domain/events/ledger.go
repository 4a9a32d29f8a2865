package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Watermill topics published by the ledger.
const (
	TopicBidSaved        = "bid.saved"
	TopicBidUpdated      = "bid.updated"
	TopicBidDeleted      = "bid.deleted"
	TopicPaymentRecorded = "payment.recorded"
)

// BidTopics lists every topic that changes the allocation of an item.
var BidTopics = []string{TopicBidSaved, TopicBidUpdated, TopicBidDeleted}

// BidChangedEvent is published whenever a winning bid row is written or removed.
// Consumers use AuctionID/ItemID to drop cached inventory for the pair.
type BidChangedEvent struct {
	EventID      uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int             `json:"version"`  // Schema version; increment on breaking changes
	BidID        int64           `json:"bid_id"`
	AuctionID    int64           `json:"auction_id"`
	ItemID       int64           `json:"item_id"`
	BidderID     int64           `json:"bidder_id,omitempty"`
	WinningPrice decimal.Decimal `json:"winning_price"`
	QuantityWon  int             `json:"quantity_won"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// PaymentRecordedEvent is published after a payment is appended.
type PaymentRecordedEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Version    int             `json:"version"`
	PaymentID  int64           `json:"payment_id"`
	BidderID   int64           `json:"bidder_id"`
	AuctionID  int64           `json:"auction_id"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Method     string          `json:"payment_method"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Package subscribers holds the ledger's event consumers run by cmd/worker.
// Handlers must be idempotent: the event bus retries failures and the outbox
// delivers at least once.
package subscribers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Troubladore/silent-auction-sub001/pkg/app"
	"github.com/Troubladore/silent-auction-sub001/pkg/cache"
	"github.com/Troubladore/silent-auction-sub001/pkg/events"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	ledgerevents "github.com/Troubladore/silent-auction-sub001/services/ledger/domain/events"
)

// Register subscribes the ledger handlers on a.EventBus. Without Redis the
// bid topics are not consumed, since there is no cache to invalidate.
func Register(ctx context.Context, a *app.Application) ([]string, error) {
	var topics []string

	if a.Redis != nil {
		ttl := cache.DefaultInventoryTTL
		if a.Config != nil {
			ttl = a.Config.InventoryCacheTTL
		}
		inv := cache.NewInventoryCache(a.Redis.Client(), ttl)
		if err := a.EventBus.SubscribeAll(ctx, ledgerevents.BidTopics, InvalidateInventory(inv, a.Logger)); err != nil {
			return nil, fmt.Errorf("subscribe bid topics: %w", err)
		}
		topics = append(topics, ledgerevents.BidTopics...)
	}

	payments := []string{ledgerevents.TopicPaymentRecorded}
	if err := a.EventBus.SubscribeAll(ctx, payments, AuditPayment(a.Logger)); err != nil {
		return nil, fmt.Errorf("subscribe payment topic: %w", err)
	}
	return append(topics, payments...), nil
}

// InventoryInvalidator drops cached inventory for a pair.
type InventoryInvalidator interface {
	Invalidate(ctx context.Context, auctionID, itemID int64) error
}

// InvalidateInventory drops the cached snapshot of the pair a bid event
// touched. The API already invalidates on write; this covers API instances
// whose own invalidation failed. A Redis error is returned so the bus retries.
func InvalidateInventory(inv InventoryInvalidator, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.DecodeJSON[ledgerevents.BidChangedEvent](msg)
		if err != nil {
			// Malformed payloads never succeed on retry.
			log.ErrorContext(ctx, "dropping undecodable bid event", "message_uuid", msg.UUID, "error", err)
			return nil
		}
		if err := inv.Invalidate(ctx, evt.AuctionID, evt.ItemID); err != nil {
			return fmt.Errorf("invalidate inventory %d/%d: %w", evt.AuctionID, evt.ItemID, err)
		}
		log.DebugContext(ctx, "inventory cache invalidated",
			"event_id", evt.EventID, "auction_id", evt.AuctionID, "item_id", evt.ItemID)
		return nil
	}
}

// AuditPayment writes one structured line per recorded payment for the
// checkout audit trail.
func AuditPayment(log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.DecodeJSON[ledgerevents.PaymentRecordedEvent](msg)
		if err != nil {
			log.ErrorContext(ctx, "dropping undecodable payment event", "message_uuid", msg.UUID, "error", err)
			return nil
		}
		log.InfoContext(ctx, "payment audit",
			"event_id", evt.EventID,
			"payment_id", evt.PaymentID,
			"bidder_id", evt.BidderID,
			"auction_id", evt.AuctionID,
			"amount_paid", evt.AmountPaid.StringFixed(2),
			"payment_method", evt.Method,
			"occurred_at", evt.OccurredAt,
		)
		return nil
	}
}

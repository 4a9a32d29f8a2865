package subscribers

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Troubladore/silent-auction-sub001/pkg/cache"
	"github.com/Troubladore/silent-auction-sub001/pkg/events"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	ledgerevents "github.com/Troubladore/silent-auction-sub001/services/ledger/domain/events"
)

func bidMessage(t *testing.T, auctionID, itemID int64) *message.Message {
	t.Helper()
	msg, err := events.NewJSONMessage(uuid.NewString(), ledgerevents.BidChangedEvent{
		EventID: uuid.New(), Version: 1, BidID: 31, AuctionID: auctionID, ItemID: itemID,
		WinningPrice: decimal.NewFromInt(100), QuantityWon: 1, OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return msg
}

func TestInvalidateInventory(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inv := cache.NewInventoryCache(rdb, time.Minute)
	handler := InvalidateInventory(inv, logger.Discard())

	mock.ExpectIncr(cache.GenerationKey(1, 100)).SetVal(4)
	mock.ExpectDel(cache.InventoryKey(1, 100)).SetVal(1)
	require.NoError(t, handler(context.Background(), bidMessage(t, 1, 100)))

	// Already gone: still success.
	mock.ExpectIncr(cache.GenerationKey(1, 100)).SetVal(5)
	mock.ExpectDel(cache.InventoryKey(1, 100)).SetVal(0)
	require.NoError(t, handler(context.Background(), bidMessage(t, 1, 100)))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateInventory_RedisErrorIsRetried(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	handler := InvalidateInventory(cache.NewInventoryCache(rdb, time.Minute), logger.Discard())

	mock.ExpectIncr(cache.GenerationKey(2, 7)).SetErr(errors.New("connection refused"))
	err := handler(context.Background(), bidMessage(t, 2, 7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2/7")
}

func TestInvalidateInventory_UndecodableIsDropped(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	var buf bytes.Buffer
	handler := InvalidateInventory(cache.NewInventoryCache(rdb, time.Minute), logger.NewWithWriter(&buf, "info"))

	require.NoError(t, handler(context.Background(), message.NewMessage("m-1", []byte("{"))))
	assert.Contains(t, buf.String(), "dropping undecodable bid event")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditPayment(t *testing.T) {
	var buf bytes.Buffer
	handler := AuditPayment(logger.NewWithWriter(&buf, "info"))

	msg, err := events.NewJSONMessage("evt-9", ledgerevents.PaymentRecordedEvent{
		EventID: uuid.New(), Version: 1, PaymentID: 7, BidderID: 12, AuctionID: 1,
		AmountPaid: decimal.RequireFromString("250.5"), Method: "check", OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), msg))

	line := buf.String()
	for _, want := range []string{`"msg":"payment audit"`, `"payment_id":7`, `"amount_paid":"250.50"`, `"payment_method":"check"`} {
		assert.True(t, strings.Contains(line, want), "missing %s in %s", want, line)
	}
}

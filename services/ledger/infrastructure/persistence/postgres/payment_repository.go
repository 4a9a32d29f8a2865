package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Troubladore/silent-auction-sub001/pkg/database"
	"github.com/Troubladore/silent-auction-sub001/pkg/events"
	ledgerdomain "github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
	domainevents "github.com/Troubladore/silent-auction-sub001/services/ledger/domain/events"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/repositories"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/infrastructure/persistence/postgres/db"
)

// PaymentRepository implements repositories.PaymentRepository against PostgreSQL.
type PaymentRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.PaymentRepository = (*PaymentRepository)(nil)

// NewPaymentRepository returns a PaymentRepository. bus may be nil.
func NewPaymentRepository(database *database.Database, bus *events.EventBus) *PaymentRepository {
	return &PaymentRepository{db: database, bus: bus}
}

// Save inserts p, fills its ID and CreatedAt, and publishes PaymentRecordedEvent
// in the same transaction.
func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	bidder, ok := narrow(p.BidderID)
	if !ok {
		return ledgerdomain.ErrBidderNotFound
	}
	auction, ok := narrow(p.AuctionID)
	if !ok {
		return ledgerdomain.ErrAuctionNotFound
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertPayment(ctx, db.InsertPaymentParams{
			BidderID:      bidder,
			AuctionID:     auction,
			AmountPaid:    p.AmountPaid,
			PaymentMethod: string(p.Method),
			CheckNumber:   nullString(p.CheckNumber),
			Notes:         nullString(p.Notes),
		})
		if err != nil {
			return mapWriteError("insert payment", err)
		}
		p.ID = int64(row.PaymentID)
		p.CreatedAt = row.CreatedAt

		if r.bus == nil {
			return nil
		}
		event := domainevents.PaymentRecordedEvent{
			EventID:    uuid.New(),
			Version:    1,
			PaymentID:  p.ID,
			BidderID:   p.BidderID,
			AuctionID:  p.AuctionID,
			AmountPaid: p.AmountPaid,
			Method:     string(p.Method),
			OccurredAt: p.CreatedAt,
		}
		if err := r.bus.PublishInTx(ctx, tx, domainevents.TopicPaymentRecorded, event.EventID.String(), event); err != nil {
			return fmt.Errorf("publish payment recorded: %w", err)
		}
		return nil
	})
}

// ListByBidder returns a bidder's payments, newest first.
func (r *PaymentRepository) ListByBidder(ctx context.Context, bidderID int64) ([]*models.Payment, error) {
	id, ok := narrow(bidderID)
	if !ok {
		return []*models.Payment{}, nil
	}
	rows, err := db.New(r.db.DB()).ListPaymentsByBidder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments := make([]*models.Payment, len(rows))
	for i, row := range rows {
		payments[i] = &models.Payment{
			ID:          int64(row.PaymentID),
			BidderID:    int64(row.BidderID),
			AuctionID:   int64(row.AuctionID),
			AmountPaid:  row.AmountPaid,
			Method:      models.PaymentMethod(row.PaymentMethod),
			CheckNumber: row.CheckNumber.String,
			Notes:       row.Notes.String,
			CreatedAt:   row.CreatedAt,
		}
	}
	return payments, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

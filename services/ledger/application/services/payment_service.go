package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	"github.com/Troubladore/silent-auction-sub001/pkg/telemetry"
	ledgerdomain "github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/repositories"
)

// RecordPaymentInput is one payment submission.
type RecordPaymentInput struct {
	BidderID    int64
	AuctionID   int64
	AmountPaid  decimal.Decimal
	Method      string
	CheckNumber string
	Notes       string
}

// PaymentService appends payments. Payments are not reconciled against bids.
type PaymentService struct {
	repo    repositories.PaymentRepository
	log     logger.Logger
	metrics *telemetry.LedgerMetrics
}

// NewPaymentService wires the service. metrics may be nil.
func NewPaymentService(repo repositories.PaymentRepository, log logger.Logger, metrics *telemetry.LedgerMetrics) *PaymentService {
	return &PaymentService{repo: repo, log: log, metrics: metrics}
}

// RecordPayment validates and stores a payment. The repository publishes
// PaymentRecordedEvent.
func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	method := models.PaymentMethod(strings.ToLower(strings.TrimSpace(in.Method)))
	p, err := models.NewPayment(in.BidderID, in.AuctionID, in.AmountPaid, method, in.CheckNumber, in.Notes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ledgerdomain.ErrValidation, err)
	}

	ctx, span := tracer.Start(ctx, "ledger.RecordPayment", trace.WithAttributes(
		attribute.Int64("bidder_id", in.BidderID),
		attribute.Int64("auction_id", in.AuctionID),
		attribute.String("payment_method", string(method)),
	))
	defer span.End()

	if err := s.repo.Save(ctx, p); err != nil {
		if isDomainError(err) {
			return nil, err
		}
		span.RecordError(err)
		s.log.ErrorContext(ctx, "ledger datastore failure",
			"op", "record_payment", "error", err, "bidder_id", in.BidderID, "auction_id", in.AuctionID)
		telemetry.CaptureError(ctx, err, map[string]string{"op": "record_payment"})
		return nil, fmt.Errorf("record_payment: %w", ledgerdomain.ErrDatastore)
	}
	s.metrics.PaymentRecorded(ctx, string(p.Method))

	s.log.InfoContext(ctx, "payment recorded",
		"payment_id", p.ID, "bidder_id", p.BidderID, "auction_id", p.AuctionID,
		"amount_paid", p.AmountPaid.StringFixed(2), "payment_method", p.Method)
	return p, nil
}

// ListPayments returns a bidder's payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, bidderID int64) ([]*models.Payment, error) {
	if bidderID <= 0 {
		return nil, ledgerdomain.Validationf("bidder_id is required")
	}
	payments, err := s.repo.ListByBidder(ctx, bidderID)
	if err != nil {
		s.log.ErrorContext(ctx, "ledger datastore failure", "op", "list_payments", "error", err, "bidder_id", bidderID)
		return nil, fmt.Errorf("list_payments: %w", ledgerdomain.ErrDatastore)
	}
	return payments, nil
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Troubladore/silent-auction-sub001/pkg/errhttp"
	"github.com/Troubladore/silent-auction-sub001/pkg/httpx"
	pkgvalidator "github.com/Troubladore/silent-auction-sub001/pkg/validator"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/application/services"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

// RecordPaymentRequest is the request body for POST /payments.
type RecordPaymentRequest struct {
	BidderID      int64           `json:"bidder_id"      validate:"required,gt=0"           example:"12"`
	AuctionID     int64           `json:"auction_id"     validate:"required,gt=0"           example:"1"`
	AmountPaid    decimal.Decimal `json:"amount_paid"    swaggertype:"string"               example:"250.00"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash check" example:"check"`
	CheckNumber   string          `json:"check_number"   validate:"max=50"                  example:"1042"`
	Notes         string          `json:"notes"          validate:"max=1000"                example:"Paid at checkout table"`
} // @name RecordPaymentRequest

// PaymentResponse is a recorded payment.
type PaymentResponse struct {
	PaymentID     int64     `json:"payment_id"             example:"7"`
	BidderID      int64     `json:"bidder_id"              example:"12"`
	AuctionID     int64     `json:"auction_id"             example:"1"`
	AmountPaid    string    `json:"amount_paid"            example:"250.00"`
	PaymentMethod string    `json:"payment_method"         example:"check"`
	CheckNumber   string    `json:"check_number,omitempty" example:"1042"`
	Notes         string    `json:"notes,omitempty"        example:"Paid at checkout table"`
	CreatedAt     time.Time `json:"created_at"             example:"2025-05-01T21:30:00Z"`
} // @name PaymentResponse

// PaymentListResponse is returned by GET /bidders/{bidderID}/payments.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
} // @name PaymentListResponse

// RecordPaymentHandler handles POST /payments requests.
type RecordPaymentHandler struct {
	payments PaymentLedger
}

// NewRecordPaymentHandler returns a RecordPaymentHandler.
func NewRecordPaymentHandler(payments PaymentLedger) *RecordPaymentHandler {
	return &RecordPaymentHandler{payments: payments}
}

// Execute records a bidder's payment.
//
//	@Summary		Record payment
//	@Description	Appends a cash or check payment. check_number is required for checks and rejected for cash. Payments are not reconciled against bids.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RecordPaymentRequest	true	"Payment"
//	@Success		201		{object}	PaymentResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/payments [post]
func (h *RecordPaymentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RecordPaymentRequest](w, r)
	if !ok {
		return
	}

	p, err := h.payments.RecordPayment(r.Context(), services.RecordPaymentInput{
		BidderID:    req.BidderID,
		AuctionID:   req.AuctionID,
		AmountPaid:  req.AmountPaid,
		Method:      req.PaymentMethod,
		CheckNumber: req.CheckNumber,
		Notes:       req.Notes,
	})
	if err != nil {
		errhttp.WriteError(w, err, "Failed to record payment")
		return
	}
	httpx.JSON(w, http.StatusCreated, toPaymentResponse(p))
}

// ListPaymentsHandler handles GET /bidders/{bidderID}/payments requests.
type ListPaymentsHandler struct {
	payments PaymentLedger
}

// NewListPaymentsHandler returns a ListPaymentsHandler.
func NewListPaymentsHandler(payments PaymentLedger) *ListPaymentsHandler {
	return &ListPaymentsHandler{payments: payments}
}

// Execute lists a bidder's payments, newest first.
//
//	@Summary	List bidder payments
//	@Tags		payments
//	@Produce	json
//	@Param		bidderID	path		int	true	"Bidder ID"
//	@Success	200			{object}	PaymentListResponse
//	@Failure	400			{object}	httpx.ErrorResponse
//	@Failure	401			{object}	httpx.ErrorResponse
//	@Failure	500			{object}	httpx.ErrorResponse
//	@Router		/bidders/{bidderID}/payments [get]
func (h *ListPaymentsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	bidderID, _ := strconv.ParseInt(chi.URLParam(r, "bidderID"), 10, 64)

	payments, err := h.payments.ListPayments(r.Context(), bidderID)
	if err != nil {
		errhttp.WriteError(w, err, "Failed to load payments")
		return
	}

	resp := PaymentListResponse{Payments: make([]PaymentResponse, len(payments))}
	for i, p := range payments {
		resp.Payments[i] = toPaymentResponse(p)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func toPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.ID,
		BidderID:      p.BidderID,
		AuctionID:     p.AuctionID,
		AmountPaid:    p.AmountPaid.StringFixed(2),
		PaymentMethod: string(p.Method),
		CheckNumber:   p.CheckNumber,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

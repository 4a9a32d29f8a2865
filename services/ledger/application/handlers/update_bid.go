package handlers

import (
	"net/http"

	"github.com/Troubladore/silent-auction-sub001/pkg/auth"
	"github.com/Troubladore/silent-auction-sub001/pkg/errhttp"
	"github.com/Troubladore/silent-auction-sub001/pkg/httpx"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	pkgvalidator "github.com/Troubladore/silent-auction-sub001/pkg/validator"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

// UpdateBidRequest is the request body for POST|PATCH /update-bid.
// winning_price may be a number, a numeric string, "" or null; the last two
// keep the stored price.
type UpdateBidRequest struct {
	Action       string `json:"action"        validate:"omitempty,oneof=update delete" example:"update"`
	BidID        int64  `json:"bid_id"        validate:"required,gt=0"                 example:"31"`
	BidderID     int64  `json:"bidder_id"     validate:"gte=0"                         example:"12"`
	WinningPrice Price  `json:"winning_price" swaggertype:"string"                     example:"130.00"`
	QuantityWon  int    `json:"quantity_won"  validate:"gte=0"                         example:"2"`
} // @name UpdateBidRequest

// UpdateBidResponse is returned by POST|PATCH /update-bid. Bid is omitted
// for deletes.
type UpdateBidResponse struct {
	Success bool         `json:"success" example:"true"`
	Bid     *BidResponse `json:"bid,omitempty"`
} // @name UpdateBidResponse

// UpdateBidHandler handles POST|PATCH /update-bid requests.
type UpdateBidHandler struct {
	ledger BidLedger
	log    logger.Logger
}

// NewUpdateBidHandler returns an UpdateBidHandler.
func NewUpdateBidHandler(ledger BidLedger, log logger.Logger) *UpdateBidHandler {
	return &UpdateBidHandler{ledger: ledger, log: log}
}

// Execute edits (action=update) or removes (action=delete) an existing bid.
//
//	@Summary		Update or delete a winning bid
//	@Description	action=update requires bidder_id and quantity_won and changes price only when given. Raising the quantity is checked against the item's free stock, counting the bid's own units; a rejection reports available. action=delete removes the bid.
//	@Tags			bids
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateBidRequest	true	"Bid change"
//	@Success		200		{object}	UpdateBidResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"validation failure or insufficient inventory (available is set)"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/update-bid [post]
//	@Router			/update-bid [patch]
func (h *UpdateBidHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateBidRequest](w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	operator, _ := auth.OperatorFromCtx(ctx)

	if req.Action == actionDelete {
		if err := h.ledger.DeleteBid(ctx, req.BidID); err != nil {
			errhttp.WriteError(w, err, "Failed to delete winning bid")
			return
		}
		h.log.InfoContext(ctx, "bid entry", "action", actionDelete, "operator", operator, "bid_id", req.BidID)
		httpx.JSON(w, http.StatusOK, UpdateBidResponse{Success: true})
		return
	}

	// Unlike save, an update never defaults the quantity: a missing value
	// would silently shrink the bid.
	var problems []string
	if req.BidderID == 0 {
		problems = append(problems, "bidder_id is required")
	}
	if req.QuantityWon == 0 {
		problems = append(problems, "quantity_won is required")
	}
	if len(problems) > 0 {
		httpx.JSON(w, http.StatusBadRequest, httpx.NewErrorResponse(problems...))
		return
	}

	bid, err := h.ledger.UpdateBid(ctx, req.BidID, models.BidChange{
		BidderID:     req.BidderID,
		WinningPrice: req.WinningPrice.Ptr(),
		QuantityWon:  req.QuantityWon,
	})
	if err != nil {
		errhttp.WriteError(w, err, "Failed to update winning bid")
		return
	}
	h.log.InfoContext(ctx, "bid entry", "action", actionUpdate, "operator", operator,
		"bid_id", bid.ID, "quantity_won", bid.QuantityWon)

	resp := toBidResponse(bid)
	httpx.JSON(w, http.StatusOK, UpdateBidResponse{Success: true, Bid: &resp})
}

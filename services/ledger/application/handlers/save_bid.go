package handlers

import (
	"net/http"
	"time"

	"github.com/Troubladore/silent-auction-sub001/pkg/auth"
	"github.com/Troubladore/silent-auction-sub001/pkg/errhttp"
	"github.com/Troubladore/silent-auction-sub001/pkg/httpx"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	pkgvalidator "github.com/Troubladore/silent-auction-sub001/pkg/validator"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/application/services"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

const (
	actionSave   = "save"
	actionUpdate = "update"
	actionDelete = "delete"
)

// SaveBidRequest is the request body for POST /save-bid.
type SaveBidRequest struct {
	AuctionID    int64  `json:"auction_id"    validate:"required,gt=0" example:"1"`
	ItemID       int64  `json:"item_id"       validate:"required,gt=0" example:"100"`
	BidderID     int64  `json:"bidder_id"     validate:"gte=0"         example:"12"`
	WinningPrice Price  `json:"winning_price" swaggertype:"string"     example:"125.00"`
	QuantityWon  int    `json:"quantity_won"  validate:"gte=0"         example:"1"`
	Action       string `json:"action"        validate:"omitempty,oneof=save delete" example:"save"`
} // @name SaveBidRequest

// BidResponse is a recorded winning bid.
type BidResponse struct {
	BidID        int64     `json:"bid_id"        example:"31"`
	AuctionID    int64     `json:"auction_id"    example:"1"`
	ItemID       int64     `json:"item_id"       example:"100"`
	BidderID     int64     `json:"bidder_id"     example:"12"`
	WinningPrice string    `json:"winning_price" example:"125.00"`
	QuantityWon  int       `json:"quantity_won"  example:"1"`
	CreatedAt    time.Time `json:"created_at"    example:"2025-05-01T19:04:00Z"`
	UpdatedAt    time.Time `json:"updated_at"    example:"2025-05-01T19:04:00Z"`
} // @name BidResponse

// StatsResponse holds an auction's running totals.
type StatsResponse struct {
	TotalRevenue string `json:"total_revenue" example:"1250.00"`
	BidCount     int    `json:"bid_count"     example:"14"`
} // @name StatsResponse

// SaveBidResponse is returned by POST /save-bid. Bid is omitted for deletes.
type SaveBidResponse struct {
	Success bool          `json:"success" example:"true"`
	Bid     *BidResponse  `json:"bid,omitempty"`
	Stats   StatsResponse `json:"stats"`
} // @name SaveBidResponse

// SaveBidHandler handles POST /save-bid requests.
type SaveBidHandler struct {
	ledger BidLedger
	log    logger.Logger
}

// NewSaveBidHandler returns a SaveBidHandler.
func NewSaveBidHandler(ledger BidLedger, log logger.Logger) *SaveBidHandler {
	return &SaveBidHandler{ledger: ledger, log: log}
}

// Execute records (action=save) or clears (action=delete) the winner of an
// item in an auction.
//
//	@Summary		Save or delete a winning bid
//	@Description	action=save records the winner of the pair, replacing any previous winner. quantity_won 0 or absent means 1; winning_price must be greater than 0. action=delete removes the pair's bid and succeeds when there is none.
//	@Tags			bids
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SaveBidRequest	true	"Winning bid"
//	@Success		200		{object}	SaveBidResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"validation failure or insufficient inventory (available is set)"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		405		{object}	httpx.ErrorResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/save-bid [post]
func (h *SaveBidHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SaveBidRequest](w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	operator, _ := auth.OperatorFromCtx(ctx)

	if req.Action == actionDelete {
		if err := h.ledger.DeleteBidByPair(ctx, req.AuctionID, req.ItemID); err != nil {
			errhttp.WriteError(w, err, "Failed to delete winning bid")
			return
		}
		h.log.InfoContext(ctx, "bid entry", "action", actionDelete, "operator", operator,
			"auction_id", req.AuctionID, "item_id", req.ItemID)
		h.respondStats(w, r, req.AuctionID)
		return
	}

	var problems []string
	if req.BidderID == 0 {
		problems = append(problems, "bidder_id is required")
	}
	if !req.WinningPrice.Set || !req.WinningPrice.Value.IsPositive() {
		problems = append(problems, "winning_price must be greater than 0")
	}
	if len(problems) > 0 {
		httpx.JSON(w, http.StatusBadRequest, httpx.NewErrorResponse(problems...))
		return
	}

	quantity := req.QuantityWon
	if quantity == 0 {
		quantity = models.DefaultQuantityWon
	}

	bid, stats, err := h.ledger.SaveBid(ctx, services.SaveBidInput{
		AuctionID:    req.AuctionID,
		ItemID:       req.ItemID,
		BidderID:     req.BidderID,
		WinningPrice: req.WinningPrice.Value,
		QuantityWon:  quantity,
	})
	if err != nil {
		errhttp.WriteError(w, err, "Failed to save winning bid")
		return
	}
	h.log.InfoContext(ctx, "bid entry", "action", actionSave, "operator", operator,
		"bid_id", bid.ID, "auction_id", bid.AuctionID, "item_id", bid.ItemID)

	resp := toBidResponse(bid)
	httpx.JSON(w, http.StatusOK, SaveBidResponse{Success: true, Bid: &resp, Stats: toStatsResponse(stats)})
}

func (h *SaveBidHandler) respondStats(w http.ResponseWriter, r *http.Request, auctionID int64) {
	stats, err := h.ledger.Stats(r.Context(), auctionID)
	if err != nil {
		errhttp.WriteError(w, err, "Failed to load auction totals")
		return
	}
	httpx.JSON(w, http.StatusOK, SaveBidResponse{Success: true, Stats: toStatsResponse(stats)})
}

func toBidResponse(b *models.WinningBid) BidResponse {
	return BidResponse{
		BidID:        b.ID,
		AuctionID:    b.AuctionID,
		ItemID:       b.ItemID,
		BidderID:     b.BidderID,
		WinningPrice: b.WinningPrice.StringFixed(2),
		QuantityWon:  b.QuantityWon,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toStatsResponse(s models.AuctionStats) StatsResponse {
	return StatsResponse{TotalRevenue: s.TotalRevenue.StringFixed(2), BidCount: s.BidCount}
}

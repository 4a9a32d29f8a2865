package handlers

import (
	"net/http"
	"time"

	"github.com/Troubladore/silent-auction-sub001/pkg/errhttp"
	"github.com/Troubladore/silent-auction-sub001/pkg/httpx"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/domain/models"
)

// ExistingBid is one bid already recorded for the pair.
type ExistingBid struct {
	BidID        int64     `json:"bid_id"        example:"31"`
	BidderID     int64     `json:"bidder_id"     example:"12"`
	BidderName   string    `json:"bidder_name"   example:"Ada Lovelace"`
	WinningPrice string    `json:"winning_price" example:"125.00"`
	QuantityWon  int       `json:"quantity_won"  example:"2"`
	CreatedAt    time.Time `json:"created_at"    example:"2025-05-01T19:04:00Z"`
	UpdatedAt    time.Time `json:"updated_at"    example:"2025-05-01T19:04:00Z"`
} // @name ExistingBid

// InventoryResponse is returned by GET /inventory-check.
type InventoryResponse struct {
	ItemID            int64         `json:"item_id"            example:"100"`
	AuctionID         int64         `json:"auction_id"         example:"1"`
	TotalQuantity     int           `json:"total_quantity"     example:"10"`
	AllocatedQuantity int           `json:"allocated_quantity" example:"4"`
	AvailableQuantity int           `json:"available_quantity" example:"6"`
	ExistingBids      []ExistingBid `json:"existing_bids"`
	CanAddBid         bool          `json:"can_add_bid"        example:"true"`
} // @name InventoryResponse

// InventoryCheckHandler handles GET /inventory-check requests.
type InventoryCheckHandler struct {
	ledger BidLedger
}

// NewInventoryCheckHandler returns an InventoryCheckHandler.
func NewInventoryCheckHandler(ledger BidLedger) *InventoryCheckHandler {
	return &InventoryCheckHandler{ledger: ledger}
}

// Execute reports how much of an item is still free in an auction.
//
//	@Summary		Check item inventory
//	@Description	Total, allocated and available quantity of an item in an auction, with the bids already recorded (newest first). available_quantity is not clamped.
//	@Tags			bids
//	@Produce		json
//	@Param			item_id		query		int	true	"Item ID"
//	@Param			auction_id	query		int	true	"Auction ID"
//	@Success		200			{object}	InventoryResponse
//	@Failure		400			{object}	httpx.ErrorResponse
//	@Failure		401			{object}	httpx.ErrorResponse
//	@Failure		404			{object}	httpx.ErrorResponse
//	@Failure		500			{object}	httpx.ErrorResponse
//	@Router			/inventory-check [get]
func (h *InventoryCheckHandler) Execute(w http.ResponseWriter, r *http.Request) {
	inv, err := h.ledger.CheckInventory(r.Context(), queryID(r, "item_id"), queryID(r, "auction_id"))
	if err != nil {
		errhttp.WriteError(w, err, "Failed to check inventory")
		return
	}
	httpx.JSON(w, http.StatusOK, toInventoryResponse(inv))
}

func toInventoryResponse(inv *models.Inventory) InventoryResponse {
	bids := make([]ExistingBid, len(inv.ExistingBids))
	for i, b := range inv.ExistingBids {
		bids[i] = ExistingBid{
			BidID:        b.BidID,
			BidderID:     b.BidderID,
			BidderName:   b.BidderName,
			WinningPrice: b.WinningPrice.StringFixed(2),
			QuantityWon:  b.QuantityWon,
			CreatedAt:    b.CreatedAt,
			UpdatedAt:    b.UpdatedAt,
		}
	}
	return InventoryResponse{
		ItemID:            inv.ItemID,
		AuctionID:         inv.AuctionID,
		TotalQuantity:     inv.TotalQuantity,
		AllocatedQuantity: inv.AllocatedQuantity,
		AvailableQuantity: inv.AvailableQuantity,
		ExistingBids:      bids,
		CanAddBid:         inv.CanAddBid,
	}
}

// ItemInAuctionResponse is returned by GET /check-item-in-auction.
type ItemInAuctionResponse struct {
	Valid bool `json:"valid" example:"true"`
} // @name ItemInAuctionResponse

// CheckItemInAuctionHandler handles GET /check-item-in-auction requests.
type CheckItemInAuctionHandler struct {
	ledger BidLedger
}

// NewCheckItemInAuctionHandler returns a CheckItemInAuctionHandler.
func NewCheckItemInAuctionHandler(ledger BidLedger) *CheckItemInAuctionHandler {
	return &CheckItemInAuctionHandler{ledger: ledger}
}

// Execute reports whether an item is enrolled in an auction.
//
//	@Summary	Check item enrollment
//	@Tags		bids
//	@Produce	json
//	@Param		item_id		query		int	true	"Item ID"
//	@Param		auction_id	query		int	true	"Auction ID"
//	@Success	200			{object}	ItemInAuctionResponse
//	@Failure	400			{object}	httpx.ErrorResponse
//	@Failure	500			{object}	httpx.ErrorResponse
//	@Router		/check-item-in-auction [get]
func (h *CheckItemInAuctionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ok, err := h.ledger.CheckItemInAuction(r.Context(), queryID(r, "item_id"), queryID(r, "auction_id"))
	if err != nil {
		errhttp.WriteError(w, err, "Failed to check item")
		return
	}
	httpx.JSON(w, http.StatusOK, ItemInAuctionResponse{Valid: ok})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seatshare-inc/seatshare/internal/application/purchase/usecases"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
	"github.com/seatshare-inc/seatshare/internal/shared/utils"
)

type QuoteRequest struct {
	PoolSID      string `json:"pool_sid" binding:"required"`
	DurationDays int    `json:"duration_days"`
	IsRecurring  bool   `json:"is_recurring"`
}

type PurchaseRequest struct {
	PoolSID          string `json:"pool_sid" binding:"required"`
	DurationDays     int    `json:"duration_days"`
	IsRecurring      bool   `json:"is_recurring"`
	PaymentReference string `json:"payment_reference" binding:"required"`
}

// PurchaseHandler serves the buyer-facing purchase flow: pre-payment quotes,
// post-payment seat reservation, and the purchase history list.
type PurchaseHandler struct {
	quoteUC          *usecases.QuotePurchaseUseCase
	purchaseUC       *usecases.PurchaseSeatUseCase
	listUserGrantsUC *usecases.ListUserGrantsUseCase
	logger           logger.Interface
}

func NewPurchaseHandler(
	quoteUC *usecases.QuotePurchaseUseCase,
	purchaseUC *usecases.PurchaseSeatUseCase,
	listUserGrantsUC *usecases.ListUserGrantsUseCase,
	logger logger.Interface,
) *PurchaseHandler {
	return &PurchaseHandler{
		quoteUC:          quoteUC,
		purchaseUC:       purchaseUC,
		listUserGrantsUC: listUserGrantsUC,
		logger:           logger,
	}
}

// Quote handles POST /purchases/quote
func (h *PurchaseHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	quote, err := h.quoteUC.Execute(c.Request.Context(), usecases.QuotePurchaseCommand{
		PoolSID:      req.PoolSID,
		DurationDays: req.DurationDays,
		IsRecurring:  req.IsRecurring,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, quote)
}

// Purchase handles POST /purchases
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	grantDTO, err := h.purchaseUC.Execute(c.Request.Context(), usecases.PurchaseSeatCommand{
		UserID:           userID,
		PoolSID:          req.PoolSID,
		DurationDays:     req.DurationDays,
		IsRecurring:      req.IsRecurring,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, grantDTO, "Seat reserved")
}

// ListMyGrants handles GET /me/grants
func (h *PurchaseHandler) ListMyGrants(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	grants, err := h.listUserGrantsUC.Execute(c.Request.Context(), usecases.ListUserGrantsQuery{
		UserID: userID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, grants)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/usecases"
	"github.com/seatshare-inc/seatshare/internal/shared/id"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
	"github.com/seatshare-inc/seatshare/internal/shared/utils"
)

type CreatePoolRequest struct {
	CatalogPriceCents int64  `json:"catalog_price_cents" binding:"required" validate:"gt=0"`
	SeatCap           int    `json:"seat_cap" binding:"required" validate:"gt=0"`
	AccessType        string `json:"access_type" binding:"required" validate:"oneof=account invitation"`
	AccessEmail       string `json:"access_email" validate:"omitempty,email"`
	AccessSecret      string `json:"access_secret" validate:"omitempty,max=255"`
	InviteLink        string `json:"invite_link" validate:"omitempty,url"`
}

type UpdatePoolRequest struct {
	CatalogPriceCents *int64 `json:"catalog_price_cents"`
	SeatCap           *int   `json:"seat_cap"`
	Active            *bool  `json:"active"`

	AccessType   *string `json:"access_type"`
	AccessEmail  string  `json:"access_email"`
	AccessSecret string  `json:"access_secret"`
	InviteLink   string  `json:"invite_link"`
}

// AdminPoolHandler manages pools under a service. Responses include the
// access credential, so these routes must stay behind the admin group.
type AdminPoolHandler struct {
	createPoolUC *usecases.CreatePoolUseCase
	getPoolUC    *usecases.GetPoolUseCase
	updatePoolUC *usecases.UpdatePoolUseCase
	logger       logger.Interface
}

func NewAdminPoolHandler(
	createPoolUC *usecases.CreatePoolUseCase,
	getPoolUC *usecases.GetPoolUseCase,
	updatePoolUC *usecases.UpdatePoolUseCase,
	logger logger.Interface,
) *AdminPoolHandler {
	return &AdminPoolHandler{
		createPoolUC: createPoolUC,
		getPoolUC:    getPoolUC,
		updatePoolUC: updatePoolUC,
		logger:       logger,
	}
}

// Create handles POST /admin/services/:id/pools
func (h *AdminPoolHandler) Create(c *gin.Context) {
	serviceSID, err := utils.ParseSIDParam(c, "id", id.PrefixService, "service")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pool, err := h.createPoolUC.Execute(c.Request.Context(), usecases.CreatePoolCommand{
		ServiceSID:        serviceSID,
		CatalogPriceCents: req.CatalogPriceCents,
		SeatCap:           req.SeatCap,
		AccessType:        req.AccessType,
		AccessEmail:       req.AccessEmail,
		AccessSecret:      req.AccessSecret,
		InviteLink:        req.InviteLink,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, pool, "Pool created successfully")
}

// Get handles GET /admin/pools/:id
func (h *AdminPoolHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPool, "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pool, err := h.getPoolUC.Execute(c.Request.Context(), usecases.GetPoolQuery{SID: sid})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, pool)
}

// Update handles PATCH /admin/pools/:id
func (h *AdminPoolHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPool, "pool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	pool, err := h.updatePoolUC.Execute(c.Request.Context(), usecases.UpdatePoolCommand{
		SID:               sid,
		CatalogPriceCents: req.CatalogPriceCents,
		SeatCap:           req.SeatCap,
		Active:            req.Active,
		AccessType:        req.AccessType,
		AccessEmail:       req.AccessEmail,
		AccessSecret:      req.AccessSecret,
		InviteLink:        req.InviteLink,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, pool)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/usecases"
	"github.com/seatshare-inc/seatshare/internal/shared/id"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
	"github.com/seatshare-inc/seatshare/internal/shared/utils"
)

type CreateServiceRequest struct {
	Name     string                 `json:"name" binding:"required" validate:"max=100"`
	Slug     string                 `json:"slug" binding:"required" validate:"max=100"`
	IconURL  string                 `json:"icon_url" validate:"omitempty,url"`
	Metadata map[string]interface{} `json:"metadata"`
}

type UpdateServiceRequest struct {
	Name      *string                `json:"name"`
	IconURL   *string                `json:"icon_url"`
	SortOrder *int                   `json:"sort_order"`
	Active    *bool                  `json:"active"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// AdminServiceHandler manages the service catalog.
type AdminServiceHandler struct {
	createServiceUC *usecases.CreateServiceUseCase
	listServicesUC  *usecases.ListServicesUseCase
	updateServiceUC *usecases.UpdateServiceUseCase
	deleteServiceUC *usecases.DeleteServiceUseCase
	logger          logger.Interface
}

func NewAdminServiceHandler(
	createServiceUC *usecases.CreateServiceUseCase,
	listServicesUC *usecases.ListServicesUseCase,
	updateServiceUC *usecases.UpdateServiceUseCase,
	deleteServiceUC *usecases.DeleteServiceUseCase,
	logger logger.Interface,
) *AdminServiceHandler {
	return &AdminServiceHandler{
		createServiceUC: createServiceUC,
		listServicesUC:  listServicesUC,
		updateServiceUC: updateServiceUC,
		deleteServiceUC: deleteServiceUC,
		logger:          logger,
	}
}

// Create handles POST /admin/services
func (h *AdminServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	service, err := h.createServiceUC.Execute(c.Request.Context(), usecases.CreateServiceCommand{
		Name:     req.Name,
		Slug:     req.Slug,
		IconURL:  req.IconURL,
		Metadata: req.Metadata,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, service, "Service created successfully")
}

// List handles GET /admin/services. Unlike the public list, it includes
// inactive services.
func (h *AdminServiceHandler) List(c *gin.Context) {
	services, err := h.listServicesUC.Execute(c.Request.Context(), usecases.ListServicesQuery{
		ActiveOnly: false,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, services)
}

// Update handles PATCH /admin/services/:id
func (h *AdminServiceHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixService, "service")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	service, err := h.updateServiceUC.Execute(c.Request.Context(), usecases.UpdateServiceCommand{
		SID:       sid,
		Name:      req.Name,
		IconURL:   req.IconURL,
		SortOrder: req.SortOrder,
		Active:    req.Active,
		Metadata:  req.Metadata,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, service)
}

// Delete handles DELETE /admin/services/:id
func (h *AdminServiceHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixService, "service")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteServiceUC.Execute(c.Request.Context(), usecases.DeleteServiceCommand{
		SID: sid,
	}); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/usecases"
	"github.com/seatshare-inc/seatshare/internal/shared/id"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
	"github.com/seatshare-inc/seatshare/internal/shared/utils"
)

// CatalogHandler serves the public browse surface: the active service list
// and the per-service availability view. Neither endpoint exposes pool
// credentials.
type CatalogHandler struct {
	listServicesUC       *usecases.ListServicesUseCase
	listAvailablePoolsUC *usecases.ListAvailablePoolsUseCase
	logger               logger.Interface
}

func NewCatalogHandler(
	listServicesUC *usecases.ListServicesUseCase,
	listAvailablePoolsUC *usecases.ListAvailablePoolsUseCase,
	logger logger.Interface,
) *CatalogHandler {
	return &CatalogHandler{
		listServicesUC:       listServicesUC,
		listAvailablePoolsUC: listAvailablePoolsUC,
		logger:               logger,
	}
}

// ListServices handles GET /services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.listServicesUC.Execute(c.Request.Context(), usecases.ListServicesQuery{
		ActiveOnly: true,
	})
	if err != nil {
		h.logger.Errorw("failed to list services", "error", err)
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, services)
}

// ListAvailablePools handles GET /services/:id/pools
func (h *CatalogHandler) ListAvailablePools(c *gin.Context) {
	serviceSID, err := utils.ParseSIDParam(c, "id", id.PrefixService, "service")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pools, err := h.listAvailablePoolsUC.Execute(c.Request.Context(), usecases.ListAvailablePoolsQuery{
		ServiceSID: serviceSID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, pools)
}

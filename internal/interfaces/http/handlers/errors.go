package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/shared/utils"
)

// respondDomainError maps domain sentinel errors onto HTTP statuses before
// falling back to the generic AppError translation. The two capacity errors
// get distinct error types: "pool_full" means the checkout never happened,
// "pool_full_after_payment" means the charge went through and a refund is
// already queued.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, catalog.ErrServiceNotFound),
		stderrors.Is(err, catalog.ErrPoolNotFound),
		stderrors.Is(err, grant.ErrGrantNotFound):
		respondTyped(c, http.StatusNotFound, "not_found", err.Error())
	case stderrors.Is(err, catalog.ErrServiceInactive),
		stderrors.Is(err, catalog.ErrPoolInactive):
		respondTyped(c, http.StatusConflict, "inactive", err.Error())
	case stderrors.Is(err, catalog.ErrServiceSlugTaken):
		respondTyped(c, http.StatusConflict, "conflict", err.Error())
	case stderrors.Is(err, catalog.ErrPoolFull):
		respondTyped(c, http.StatusConflict, "pool_full", err.Error())
	case stderrors.Is(err, grant.ErrPoolFullAfterPayment):
		respondTyped(c, http.StatusConflict, "pool_full_after_payment",
			"pool filled after payment was captured; a refund has been queued")
	case stderrors.Is(err, grant.ErrPaymentReferenceRequired):
		respondTyped(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		utils.ErrorResponseWithError(c, err)
	}
}

func respondTyped(c *gin.Context, statusCode int, errType, message string) {
	c.JSON(statusCode, utils.APIResponse{
		Success: false,
		Error: &utils.ErrorInfo{
			Type:    errType,
			Message: message,
		},
	})
}

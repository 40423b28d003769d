package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seatshare-inc/seatshare/internal/shared/constants"
	"github.com/seatshare-inc/seatshare/internal/shared/utils"
)

// Identity resolves the calling user from the X-User-ID header set by the
// upstream gateway, which has already authenticated the request. This service
// trusts the header; it must never be exposed without that gateway in front.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(constants.HeaderUserID)
		if raw == "" {
			c.Next()
			return
		}

		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid X-User-ID header")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, uint(userID))
		c.Next()
	}
}

// RequireUser aborts requests that did not present a resolvable identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(constants.ContextKeyUserID); !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}
		c.Next()
	}
}

package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seatshare-inc/seatshare/internal/shared/constants"
	"github.com/seatshare-inc/seatshare/internal/shared/errors"
	"github.com/seatshare-inc/seatshare/internal/shared/id"
)

// ParseSIDParam parses and validates a Stripe-style prefixed ID from a URL
// path parameter. paramName is the Gin route parameter name (e.g. "id"),
// prefix the expected SID prefix (e.g. id.PrefixPool), entityName is used in
// error messages.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

// CurrentUserID returns the authenticated user ID placed in the context by
// the identity middleware.
func CurrentUserID(c *gin.Context) (uint, error) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, errors.NewUnauthorizedError("user not authenticated")
	}
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return 0, errors.NewUnauthorizedError("user not authenticated")
	}
	return userID, nil
}

// ParseUintQuery parses an unsigned integer query parameter with a default.
func ParseUintQuery(c *gin.Context, name string, def uint) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s parameter", name))
	}
	return uint(v), nil
}

package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"verdant/internal/shared/errors"
	"verdant/internal/shared/id"
)

// ParseSIDParam parses and validates a Stripe-style prefixed ID from a URL
// path parameter. paramName is the Gin route parameter name (e.g., "id").
// prefix is the expected SID prefix (e.g., id.PrefixPlan).
// entityName is used in error messages (e.g., "plan").
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

// ParseIntParam parses an integer URL path parameter.
func ParseIntParam(c *gin.Context, paramName string) (int, error) {
	raw := c.Param(paramName)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("%s must be an integer", paramName))
	}
	return value, nil
}

// ParseIntQuery parses an optional integer query parameter. Absent parameters
// return (0, false, nil).
func ParseIntQuery(c *gin.Context, name string) (int, bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, errors.NewInvalidQueryError(fmt.Sprintf("%s must be an integer", name))
	}
	return value, true, nil
}

// GetUserID extracts the authenticated user ID set by the auth middleware.
func GetUserID(c *gin.Context) (uint, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, errors.NewUnauthorizedError("missing user identity")
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, errors.NewUnauthorizedError("invalid user identity")
	}
	return userID, nil
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"verdant/internal/shared/errors"
)

// bindJSON binds the request body and normalizes binding failures into the
// validation error type so clients get a 400 with the taxonomy type instead
// of an opaque server error.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.NewValidationError("invalid request body", err.Error())
	}
	return nil
}

package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"verdant/internal/shared/confirm"
	"verdant/internal/shared/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Details string          `json:"details,omitempty"`
	Impact  *confirm.Impact `json:"impact,omitempty"`
}

// ListResponse represents one keyset page. NextCursor is null when the
// sequence is exhausted; totals are deliberately absent because counting a
// concurrently mutated listing would be both expensive and immediately stale.
type ListResponse struct {
	Items      interface{} `json:"items"`
	NextCursor *string     `json:"next_cursor"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	if len(message) > 0 {
		response.Message = message[0]
	} else {
		response.Message = "Resource created successfully"
	}

	c.JSON(http.StatusCreated, response)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: "error", Message: message},
	})
}

// ErrorResponseWithError sends an error response based on error type
func ErrorResponseWithError(c *gin.Context, err error) {
	var statusCode int
	var errorInfo ErrorInfo

	if appErr := errors.GetAppError(err); appErr != nil {
		statusCode = appErr.Code
		errorInfo = ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	} else {
		// Do not expose internal error details to prevent information leakage
		statusCode = http.StatusInternalServerError
		errorInfo = ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error occurred",
		}
	}

	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &errorInfo,
	})
}

// RequiresConfirmationResponse reports a destructive change that was blocked
// pending confirmation. The impact report tells the client what a confirmed
// retry would remove.
func RequiresConfirmationResponse(c *gin.Context, impact confirm.Impact) {
	c.JSON(http.StatusConflict, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(errors.ErrorTypeRequiresConfirmation),
			Message: "this change is destructive and requires confirmation",
			Impact:  &impact,
		},
	})
}

// ListSuccessResponse sends one keyset page
func ListSuccessResponse(c *gin.Context, items interface{}, nextCursor *string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    ListResponse{Items: items, NextCursor: nextCursor},
	})
}

// NoContentResponse sends a no content response
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

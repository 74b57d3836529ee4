package response

import (
	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/apperrors"
)

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type envelope struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error,omitempty"`
}

// ErrorResponse writes the error envelope with an explicit status.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, envelope{
		Success: false,
		Error:   &Error{Code: code, Message: message},
	})
}

// FromError maps a domain error through the shared taxonomy. Every handler
// error path funnels through here so status mapping stays uniform.
func FromError(c *gin.Context, err error) {
	ErrorResponse(c, apperrors.HTTPStatus(err), apperrors.Code(err), err.Error())
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, 400, "VALIDATION_ERROR", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, 401, "UNAUTHORIZED", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, 404, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, 500, "STORAGE_ERROR", message)
}

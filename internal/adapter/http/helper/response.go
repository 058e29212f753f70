package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/adapter/http/validation"
	"todolist/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	resp := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		resp.Message = message[0]
	}

	c.JSON(statusCode, resp)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := validation.FormatValidationErrors(err)
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErrors)
}

func SendBadRequestError(c *gin.Context, field, message string) {
	SendError(c, http.StatusBadRequest, "BAD_REQUEST", fieldErrors(field, message))
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", fieldErrors("auth", message))
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, "NOT_FOUND", fieldErrors("resource", message))
}

func SendConflictError(c *gin.Context, field, message string) {
	SendError(c, http.StatusConflict, "CONFLICT", fieldErrors(field, message))
}

func SendUnsupportedMediaError(c *gin.Context, message string) {
	SendError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", fieldErrors("photo", message))
}

func SendUnavailableError(c *gin.Context, message string) {
	SendError(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", fieldErrors("storage", message))
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", fieldErrors("server", message), details...)
}

func fieldErrors(field, message string) []response.ValidationError {
	return []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}
}

package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"activitymagic/internal/domain"
)

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrEmptyContent):
		return http.StatusBadRequest, "EMPTY_CONTENT", "content is required"
	case errors.Is(err, domain.ErrMissingCategory):
		return http.StatusBadRequest, "MISSING_CATEGORY", "category is required"
	case errors.Is(err, domain.ErrMissingURL):
		return http.StatusBadRequest, "MISSING_URL", "url is required"
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusBadRequest, "INVALID_URL", "url is not a valid absolute URL"
	case errors.Is(err, domain.ErrMissingLocation):
		return http.StatusBadRequest, "MISSING_LOCATION", "location name is required"
	case errors.Is(err, domain.ErrMissingRawInput):
		return http.StatusBadRequest, "MISSING_RAW_INPUT", "raw input is required"
	case errors.Is(err, domain.ErrMissingInventory):
		return http.StatusBadRequest, "MISSING_INVENTORY", "ingredients are required"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", "invalid request body"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

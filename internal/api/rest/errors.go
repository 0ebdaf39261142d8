package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"

	// Server errors (5xx)
	errCodeUpstreamError ErrorCode = "upstream_error"
	errCodeInternalError ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondDomainError maps an error from the session layer to its HTTP response
func respondDomainError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAddress), errors.Is(err, domain.ErrInvalidTokenID):
		respondBadRequest(c, message, err.Error())
	case errors.Is(err, domain.ErrContractNotFound), errors.Is(err, domain.ErrTokenURIUnavailable):
		respondWithError(c, http.StatusNotFound, errCodeNotFound, message, err.Error())
	case errors.Is(err, domain.ErrUnsupportedURIScheme):
		respondWithError(c, http.StatusUnprocessableEntity, errCodeValidationFailed, message, err.Error())
	case errors.Is(err, domain.ErrMetadataTerminal), errors.Is(err, domain.ErrAllGatewaysExhausted):
		logger.WarnCtx(c.Request.Context(), message, zap.Error(err))
		respondWithError(c, http.StatusBadGateway, errCodeUpstreamError, message, err.Error())
	default:
		respondInternalError(c, err, message)
	}
}

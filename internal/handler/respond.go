// Package handler holds the pieces shared by the HTTP handlers: the JSON
// error envelope and the domain-error to status-code mapping.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
)

// ErrorBody is the JSON error envelope returned on every failed request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and the human-readable
// message. Backend business rejections surface their message verbatim.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFromError maps a domain error code to an HTTP status.
func StatusFromError(err error) int {
	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT, domain.ESTALE:
		return http.StatusConflict
	case domain.EBACKEND:
		return http.StatusUnprocessableEntity
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the JSON error envelope for err. Internal errors are logged
// with their cause; the client only ever sees the sanitized message.
func Error(c echo.Context, logger zerolog.Logger, err error) error {
	status := StatusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("path", c.Path()).Msg("request rejected")
	}

	return c.JSON(status, ErrorBody{Error: ErrorDetail{
		Code:    domain.ErrorCode(err),
		Message: domain.ErrorMessage(err),
	}})
}

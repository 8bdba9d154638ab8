package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/mashup/internal/core/domain"
	"github.com/samirrijal/mashup/internal/pkg/logging"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, upstream_error, configuration_error, internal_error
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errConfiguration reports a server that is missing required settings.
func errConfiguration(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "configuration_error", msg)
}

// errBadGateway reports a failed call to the article feed.
func errBadGateway(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadGateway, "upstream_error", msg)
}

func errGatewayTimeout(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusGatewayTimeout, "timeout", msg)
}

// serviceError maps a usecase error onto the HTTP error taxonomy.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		return errConfiguration(c, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		logging.FromContext(c.UserContext()).Warn("upstream failure", "error", err)
		return errBadGateway(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return errGatewayTimeout(c, "request timed out")
	default:
		logging.FromContext(c.UserContext()).Error("request failed", "error", err)
		return errInternal(c, "internal error")
	}
}

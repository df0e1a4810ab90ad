package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"campusdocs/internal/http/middleware"
	"campusdocs/internal/i18n"
	"campusdocs/internal/pdf"
	"campusdocs/internal/quota"
	"campusdocs/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking
// internal details. code is the machine-readable short error code, message a
// client-safe human-readable one.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service-layer errors onto the response contract.
// Read-path failures deliberately collapse into a single NOT_FOUND class;
// messages shown to end users come from the i18n catalogs in the request
// language.
func writeServiceError(c *fiber.Ctx, loc *i18n.Localizer, err error) error {
	var quotaErr *quota.ExceededError
	var pdfErr *pdf.ValidationError

	switch {
	case errors.As(err, &quotaErr):
		return writeError(c, fiber.StatusForbidden, "QUOTA_EXCEEDED", quotaErr.Message)
	case errors.As(err, &pdfErr):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_PDF", pdfErr.Message)
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "insufficient permissions")
	case errors.Is(err, service.ErrPaginatedOnlyForPDF):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", loc.Translate(i18n.KeyPaginatedOnlyPDF, langFrom(c)))
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrNotFoundOrUnreadable):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", loc.Translate(i18n.KeyContentNotFound, langFrom(c)))
	case errors.Is(err, service.ErrUploadTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", err.Error())
	case errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrBadApprovalName):
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses raised outside the handlers (middleware, routing).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "insufficient permissions")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

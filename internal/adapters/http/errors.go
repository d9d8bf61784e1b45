package http

import (
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:          "bad_request",
	fiber.StatusNotFound:            "not_found",
	fiber.StatusTooManyRequests:     "rate_limited",
	fiber.StatusInternalServerError: "internal_error",
}

// newError writes an APIError carrying the request and trace IDs so a
// failing call can be found in the logs.
func newError(c *fiber.Ctx, status int, message string) error {
	e := APIError{Status: status, Code: errorCodes[status], Message: message}
	e.RequestID, _ = c.Locals("requestid").(string)
	if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
		e.TraceID = sc.TraceID().String()
	}
	return c.Status(status).JSON(e)
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, msg)
}

func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, msg)
}

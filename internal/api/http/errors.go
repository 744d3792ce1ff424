package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-forecast-service/internal/weather"
)

// kindHTTP labels plain fiber errors (unmatched routes and the like) that
// carry no taxonomy kind.
const kindHTTP = "HTTP_ERROR"

// NewErrorHandler returns the centralized fiber error handler: every error
// escaping a handler is logged with request context and rendered as the
// single error body shape.
func NewErrorHandler(logger *slog.Logger, clock clockwork.Clock) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		kind, status, message := classify(err)

		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"error", err,
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request failed", attrs...)
		}

		return c.Status(status).JSON(weather.ErrorResponse{
			Error:      kind,
			Message:    message,
			Timestamp:  clock.Now().UTC(),
			StatusCode: status,
		})
	}
}

// classify maps an error onto its kind label, HTTP status, and client-safe
// message.
func classify(err error) (string, int, string) {
	var werr *weather.Error
	if errors.As(err, &werr) {
		return string(werr.Kind), statusForKind(werr.Kind), clientMessage(werr)
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return kindHTTP, ferr.Code, ferr.Message
	}

	return string(weather.KindInternal), fiber.StatusInternalServerError, "An unexpected error occurred"
}

func statusForKind(k weather.Kind) int {
	switch k {
	case weather.KindValidation:
		return fiber.StatusBadRequest
	case weather.KindSchema:
		return fiber.StatusUnprocessableEntity
	case weather.KindLocationNotFound:
		return fiber.StatusNotFound
	case weather.KindUpstream:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// clientMessage hides operator detail for server-side kinds; validation and
// schema messages are written for clients and pass through unchanged.
func clientMessage(e *weather.Error) string {
	switch e.Kind {
	case weather.KindConfiguration:
		return "Weather service configuration error"
	case weather.KindUpstream:
		return "Weather service temporarily unavailable"
	case weather.KindLocationNotFound:
		return "Location not found"
	case weather.KindInternal:
		return "An unexpected error occurred"
	default:
		return e.Message
	}
}

// statusFor reports the HTTP status err will be rendered with; middleware
// uses it to label logs and metrics before the error handler runs.
func statusFor(err error) int {
	_, status, _ := classify(err)
	return status
}

package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mgpai22/scribe/internal/logging"
)

const requestIDKey = "requestid"

// requestLogger logs one structured line per request, tagged with a
// generated request id that is also echoed in the X-Request-ID header.
func requestLogger(logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()

		c.Locals(requestIDKey, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		err := c.Next()
		if err != nil {
			// let the error handler write the response so the status is final
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		statusCode := c.Response().StatusCode()
		fields := []any{
			"request_id", requestID,
			"method", c.Method(),
			"uri", c.OriginalURL(),
			"status", statusCode,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.IP(),
		}

		switch {
		case statusCode >= fiber.StatusInternalServerError:
			logger.Errorw("request completed with server error", fields...)
		case statusCode >= fiber.StatusBadRequest:
			logger.Warnw("request completed with client error", fields...)
		default:
			logger.Debugw("request completed", fields...)
		}
		return nil
	}
}

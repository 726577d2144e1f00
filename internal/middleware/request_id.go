package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"signup-qa/internal/pkg/contextkeys"
	"signup-qa/internal/pkg/log"
)

// RequestID assigns a request ID, threads it through the request context
// for log correlation, and echoes it back in the X-Request-ID header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := contextkeys.WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			return next(c)
		}
	}
}

// RequestLogger logs one line per request with method, path, status and
// latency. The request ID lands on the record via the context handler.
func RequestLogger(logger log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.InfoContext(c.Request().Context(), "http request",
				log.String("method", c.Request().Method),
				log.String("path", c.Request().URL.Path),
				log.Int("status", c.Response().Status),
				log.Any("duration", time.Since(start)),
			)
			return err
		}
	}
}

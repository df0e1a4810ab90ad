package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger logs each HTTP request as one JSON object per line on stdout, with
// timestamps in local time.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.Local)
}

// LoggerWithWriter is Logger with an explicit sink and timestamp zone.
// Emitted fields: ts, request_id, method, path, status, latency (ms).
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.Local
	}
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Collected after the handler ran so the final status is captured.
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		latency := float64(time.Since(start).Microseconds()) / 1000.0

		_ = enc.Encode(map[string]any{
			"ts":         time.Now().In(loc).Format(time.RFC3339Nano),
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    latency,
		})

		return err
	}
}

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// WithLatency искусственная задержка перед обработкой запроса, delay <= 0 отключает задержку
func WithLatency(delay time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-c.Context().Done():
				timer.Stop()
			}
		}
		return c.Next()
	}
}

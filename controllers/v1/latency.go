package apiv1

import (
	"talentflow-backend/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Latency искусственные задержки групп маршрутов, нулевое значение без задержек
type Latency struct {
	List             time.Duration
	Count            time.Duration
	Create           time.Duration
	Candidates       time.Duration
	AssessmentCreate time.Duration
}

func delay(d time.Duration) fiber.Handler {
	return middleware.WithLatency(d)
}

package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg, nil)
	return func(c *fiber.Ctx) error {
		d := &data{
			pid:   pid,
			start: time.Now(),
		}
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}
		if cfg.Skip != nil && cfg.Skip(c.Path()) {
			return err
		}

		message := getMessage(c)
		logger := cfg.Logger
		if logger == nil {
			logger = log.StandardLogger()
		}
		entity := logger.WithFields(getLogrusFields(ftm, c, d))
		if err != nil {
			entity = entity.WithError(err)
		}
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			entity.Error(message)
		} else if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			entity.Warn(message)
		} else {
			entity.Info(message)
		}

		return err
	}
}

func getMessage(c *fiber.Ctx) string {
	return "запрос api"
}

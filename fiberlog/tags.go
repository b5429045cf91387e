package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagQuery     = "query"
	TagUserAgent = "user_agent"
	TagBody      = "body"
	TagResBody   = "res_body"
	RequestID    = "request_id"
)

// тело запроса/ответа в логе обрезается
const maxBodyLen = 2048

// FuncTag значение поля лога для тега
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func getFuncTagMap(cfg Config, _ *data) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, d *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagQuery: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Request().URI().QueryString())
		},
		TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return truncate(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			contentType := string(c.Response().Header.ContentType())
			if contentType != "" && contentType != fiber.MIMEApplicationJSON && contentType != fiber.MIMEApplicationJSONCharsetUTF8 {
				return ""
			}
			return truncate(c.Response().Body())
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			id := c.Get(fiber.HeaderXRequestID)
			if id == "" {
				id = string(c.Response().Header.Peek(fiber.HeaderXRequestID))
			}
			return id
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func truncate(body []byte) string {
	if len(body) > maxBodyLen {
		return string(body[:maxBodyLen]) + "..."
	}
	return string(body)
}

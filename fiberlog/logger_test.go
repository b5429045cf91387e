package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&log.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagMethod, TagPath, TagStatus, TagBody, TagResBody, RequestID, "unknown"},
	}))
	app.Post("/jobs", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": 1})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "fail"})
	})

	req := httptest.NewRequest(fiber.MethodPost, "/jobs", strings.NewReader(`{"title":"Go"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderXRequestID, "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "POST", entry[TagMethod])
	require.Equal(t, "/jobs", entry[TagPath])
	require.Equal(t, float64(201), entry[TagStatus])
	require.Equal(t, `{"title":"Go"}`, entry[TagBody])
	require.Equal(t, `{"id":1}`, entry[TagResBody])
	require.Equal(t, "req-1", entry[RequestID])
	require.NotContains(t, entry, "unknown")

	buf.Reset()
	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warning", entry["level"])
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", maxBodyLen+10)
	require.Len(t, truncate([]byte(long)), maxBodyLen+3)
	require.Equal(t, "short", truncate([]byte("short")))
}

func TestMiddlewareSkip(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.New()
	logger.SetOutput(buf)

	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   ConfigDefault.Tags,
		Skip: func(path string) bool {
			return strings.HasSuffix(path, "/export")
		},
	}))
	app.Get("/responses/export", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/responses/export", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Zero(t, buf.Len())
}

package controllers

import (
	"strconv"
	"strings"
	"talentflow-backend/models"
	apimodels "talentflow-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

// GetID строковый идентификатор из пути
func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(ctx.Params("id"))
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

// GetIntID числовой идентификатор из пути
func (c *BaseAPIController) GetIntID(ctx *fiber.Ctx, param string) (int, error) {
	value := strings.TrimSpace(ctx.Params(param))
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("некорректный идентификатор: %q", value)
	}
	return id, nil
}

// GetIntQuery обязательный числовой параметр запроса
func (c *BaseAPIController) GetIntQuery(ctx *fiber.Ctx, param string) (int, error) {
	value := strings.TrimSpace(ctx.Query(param))
	if value == "" {
		return 0, errors.Errorf("не указан параметр %v", param)
	}
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("некорректный параметр %v: %q", param, value)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if requestID := ctx.Get(fiber.HeaderXRequestID); requestID != "" {
		logger = logger.WithField("request_id", requestID)
	}
	return logger
}

// SendError ответ по ошибке обработчика: не найдено 404, ошибка генератора 502,
// сервис не настроен 503, остальное 500 с записью причины в лог
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrGeneration):
		logger.WithError(err).Error(msg)
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(msg))
	case errors.Is(err, models.ErrNotConfigured):
		logger.WithError(err).Warn(msg)
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

package apiv1

import (
	"fmt"
	"strings"
	"talentflow-backend/controllers"
	responsehandler "talentflow-backend/lib/response"
	apimodels "talentflow-backend/models/api"
	responseapimodels "talentflow-backend/models/api/response"
	"time"

	"github.com/gofiber/fiber/v2"
)

type responseApiController struct {
	controllers.BaseAPIController
}

func InitResponseApiRouters(app fiber.Router, latency Latency) {
	controller := responseApiController{}
	app.Route("responses", func(router fiber.Router) {
		router.Post("", delay(latency.Create), controller.create)
		router.Get("", delay(latency.List), controller.list)
		router.Get("export", controller.export)
	})
}

// @Summary Сохранение ответов кандидата
// @Tags Ответы
// @Description Ответы не проверяются на заполненность
// @Param	body body	 responseapimodels.ResponseData	true	"request body"
// @Success 201 {object} responseapimodels.ResponseView
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/responses [post]
func (c *responseApiController) create(ctx *fiber.Ctx) error {
	var payload responseapimodels.ResponseData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := responsehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения ответов")
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

// @Summary Ответы на тест
// @Tags Ответы
// @Param   assessmentId	query	string	true	"ID теста"
// @Success 200 {object} responseapimodels.ResponseList
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/responses [get]
func (c *responseApiController) list(ctx *fiber.Ctx) error {
	assessmentID := strings.TrimSpace(ctx.Query("assessmentId"))
	if assessmentID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан параметр assessmentId"))
	}
	list, err := responsehandler.Instance.List(assessmentID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения ответов")
	}
	return ctx.Status(fiber.StatusOK).JSON(responseapimodels.ResponseList{Data: list})
}

// @Summary Выгрузка ответов в Excel
// @Tags Ответы
// @Param   assessmentId	query	string	true	"ID теста"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/responses/export [get]
func (c *responseApiController) export(ctx *fiber.Ctx) error {
	assessmentID := strings.TrimSpace(ctx.Query("assessmentId"))
	if assessmentID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан параметр assessmentId"))
	}
	data, err := responsehandler.Instance.Export(assessmentID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки ответов в Excel")
	}
	fileName := fmt.Sprintf("responses-%v.xlsx", time.Now().Format("20060102-150405"))
	return sendXlsx(ctx, fileName, data.Bytes())
}

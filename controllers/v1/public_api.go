package apiv1

import (
	"talentflow-backend/controllers"
	assessmenthandler "talentflow-backend/lib/assessment"
	responsehandler "talentflow-backend/lib/response"
	apimodels "talentflow-backend/models/api"
	responseapimodels "talentflow-backend/models/api/response"

	"github.com/gofiber/fiber/v2"
)

type publicApiController struct {
	controllers.BaseAPIController
}

// InitPublicApiRouters прохождение опубликованных тестов кандидатами
func InitPublicApiRouters(app fiber.Router) {
	controller := publicApiController{}
	app.Route("public/assessments/:id", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Post("responses", controller.submit)
	})
}

// @Summary Опубликованный тест
// @Tags Публичный доступ
// @Param   id	path	string	true	"ID теста"
// @Success 200 {object} assessmentapimodels.AssessmentView
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/assessments/{id} [get]
func (c *publicApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assessmenthandler.Instance.PublicGet(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Отправка ответов на опубликованный тест
// @Tags Публичный доступ
// @Description Обязательные вопросы проверяются, при ошибке возвращается список незаполненных
// @Param   id	path	string	true	"ID теста"
// @Param	body body	 responseapimodels.PublicResponseData	true	"request body"
// @Success 201 {object} responseapimodels.ResponseView
// @Failure 400 {object} responseapimodels.ValidationFailure
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/assessments/{id}/responses [post]
func (c *publicApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload responseapimodels.PublicResponseData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, validation, err := responsehandler.Instance.PublicSubmit(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения ответов")
	}
	if validation != nil {
		missing := append([]string{}, validation.Missing...)
		missing = append(missing, validation.Invalid...)
		return ctx.Status(fiber.StatusBadRequest).JSON(responseapimodels.ValidationFailure{
			Status:  apimodels.StatusFail,
			Message: "Не заполнены обязательные вопросы",
			Missing: missing,
		})
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

package apiv1

import (
	"talentflow-backend/controllers"
	gpthandler "talentflow-backend/lib/gpt"
	apimodels "talentflow-backend/models/api"
	assessmentapimodels "talentflow-backend/models/api/assessment"

	"github.com/gofiber/fiber/v2"
)

type aiApiController struct {
	controllers.BaseAPIController
}

func InitAiApiRouters(app fiber.Router) {
	controller := aiApiController{}
	app.Route("ai", func(router fiber.Router) {
		router.Post("assessment", controller.generateAssessment)
	})
}

// @Summary Генерация теста
// @Tags ИИ
// @Description Черновик теста по описанию, результат не сохраняется
// @Param	body body	 assessmentapimodels.GenerateRequest	true	"request body"
// @Success 200 {object} builder.Document
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/ai/assessment [post]
func (c *aiApiController) generateAssessment(ctx *fiber.Ctx) error {
	var payload assessmentapimodels.GenerateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := gpthandler.Instance.GenerateAssessment(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка генерации теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

package apiv1

import (
	"strings"
	"talentflow-backend/controllers"
	candidatehandler "talentflow-backend/lib/candidate"
	"talentflow-backend/lib/query"
	apimodels "talentflow-backend/models/api"
	candidateapimodels "talentflow-backend/models/api/candidate"

	"github.com/gofiber/fiber/v2"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app fiber.Router, latency Latency) {
	controller := candidateApiController{}
	app.Route("candidates", func(router fiber.Router) {
		router.Get("", delay(latency.List), controller.list)
		router.Post("", delay(latency.Create), controller.create)
		router.Patch(":id", controller.patch)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Список кандидатов
// @Tags Кандидат
// @Param   page		query	int		false	"страница"
// @Param   limit		query	int		false	"записей на странице, по умолчанию 25"
// @Param   stage		query	string	false	"этап подбора, точное совпадение"
// @Param   search		query	string	false	"поиск по имени и email"
// @Param   jobId		query	int		false	"ID вакансии"
// @Param   sortBy		query	string	false	"поле сортировки"
// @Param   sortOrder	query	string	false	"asc, desc"
// @Success 200 {object} query.Page[candidateapimodels.CandidateView]
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates [get]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	req := query.ParseRequest(queryGetter(ctx), query.Defaults{Limit: candidatehandler.DefaultLimit})
	req.Status = strings.TrimSpace(ctx.Query("stage"))
	jobID := 0
	if ctx.Query("jobId") != "" {
		var err error
		if jobID, err = c.GetIntQuery(ctx, "jobId"); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	resp, err := candidatehandler.Instance.List(req, jobID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Создание кандидата
// @Tags Кандидат
// @Param	body body	 candidateapimodels.CandidateData	true	"request body"
// @Success 201 {object} candidateapimodels.CandidateView
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates [post]
func (c *candidateApiController) create(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания кандидата")
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

// @Summary Смена этапа кандидата
// @Tags Кандидат
// @Description Без stage в теле возвращает кандидата без изменений
// @Param   id	path	string	true	"ID кандидата"
// @Param	body body	 candidateapimodels.StagePatch	true	"request body"
// @Success 200 {object} candidateapimodels.CandidateView
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id} [patch]
func (c *candidateApiController) patch(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.StagePatch
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.PatchStage(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения этапа кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Удаление кандидата
// @Tags Кандидат
// @Param   id	path	string	true	"ID кандидата"
// @Success 200 {object} candidateapimodels.DeleteView
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id} [delete]
func (c *candidateApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = candidatehandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(candidateapimodels.DeleteView{Success: true})
}

package apiv1

import (
	"talentflow-backend/controllers"
	assessmenthandler "talentflow-backend/lib/assessment"
	apimodels "talentflow-backend/models/api"
	assessmentapimodels "talentflow-backend/models/api/assessment"
	jobapimodels "talentflow-backend/models/api/job"

	"github.com/gofiber/fiber/v2"
)

type assessmentApiController struct {
	controllers.BaseAPIController
}

func InitAssessmentApiRouters(app fiber.Router, latency Latency) {
	controller := assessmentApiController{}
	app.Route("assessments", func(router fiber.Router) {
		router.Post("", delay(latency.AssessmentCreate), controller.create)
		router.Get("", delay(latency.List), controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("publish", controller.togglePublish)
			idRoute.Get("pdf", controller.pdf)
			idRoute.Post("archive", controller.archive)
		})
	})
}

// @Summary Создание теста
// @Tags Тест
// @Description Документ теста сохраняется как есть
// @Param	body body	 assessmentapimodels.AssessmentData	true	"request body"
// @Success 201 {object} assessmentapimodels.CreatedView
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assessments [post]
func (c *assessmentApiController) create(ctx *fiber.Ctx) error {
	var payload assessmentapimodels.AssessmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := assessmenthandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания теста")
	}
	return ctx.Status(fiber.StatusCreated).JSON(assessmentapimodels.CreatedView{
		Message: "Тест сохранен",
		ID:      id,
	})
}

// @Summary Тесты вакансии
// @Tags Тест
// @Param   jobId	query	int	true	"ID вакансии"
// @Success 200 {array} assessmentapimodels.AssessmentView
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assessments [get]
func (c *assessmentApiController) list(ctx *fiber.Ctx) error {
	jobID, err := c.GetIntQuery(ctx, "jobId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assessmenthandler.Instance.ListByJob(jobID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка тестов")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Получение теста
// @Tags Тест
// @Param   id	path	string	true	"ID теста"
// @Success 200 {object} assessmentapimodels.AssessmentView
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assessments/{id} [get]
func (c *assessmentApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assessmenthandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Изменение теста
// @Tags Тест
// @Param   id	path	string	true	"ID теста"
// @Param	body body	 assessmentapimodels.AssessmentUpdate	true	"request body"
// @Success 200 {object} assessmentapimodels.AssessmentView
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assessments/{id} [put]
func (c *assessmentApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assessmentapimodels.AssessmentUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assessmenthandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Удаление теста
// @Tags Тест
// @Param   id	path	string	true	"ID теста"
// @Success 200 {object} jobapimodels.MessageView
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assessments/{id} [delete]
func (c *assessmentApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = assessmenthandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(jobapimodels.MessageView{Message: "Тест удален"})
}

// @Summary Публикация теста
// @Tags Тест
// @Description Переключает признак публикации, для опубликованного теста возвращает ссылку
// @Param   id	path	string	true	"ID теста"
// @Success 200 {object} assessmentapimodels.PublishView
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assessments/{id}/publish [put]
func (c *assessmentApiController) togglePublish(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assessmenthandler.Instance.TogglePublish(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка публикации теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Тест в PDF
// @Tags Тест
// @Param   id	path	string	true	"ID теста"
// @Success 200 {file} file
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assessments/{id}/pdf [get]
func (c *assessmentApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, fileName, err := assessmenthandler.Instance.ExportPDF(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования PDF теста")
	}
	return sendPdf(ctx, fileName, body)
}

// @Summary Архивирование теста в хранилище
// @Tags Тест
// @Description Сохраняет PDF теста в S3, возвращает ключ файла
// @Param   id	path	string	true	"ID теста"
// @Success 200 {object} assessmentapimodels.ArchiveView
// @Failure 404 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assessments/{id}/archive [post]
func (c *assessmentApiController) archive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assessmenthandler.Instance.ArchivePDF(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка архивирования теста")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

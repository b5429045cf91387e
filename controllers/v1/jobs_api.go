package apiv1

import (
	"fmt"
	"talentflow-backend/controllers"
	candidatehandler "talentflow-backend/lib/candidate"
	xlsexport "talentflow-backend/lib/export/xls"
	jobhandler "talentflow-backend/lib/job"
	"talentflow-backend/lib/query"
	apimodels "talentflow-backend/models/api"
	candidateapimodels "talentflow-backend/models/api/candidate"
	jobapimodels "talentflow-backend/models/api/job"
	"time"

	"github.com/gofiber/fiber/v2"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app fiber.Router, latency Latency) {
	controller := jobApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Get("", delay(latency.List), controller.list)
		router.Get("count", delay(latency.Count), controller.count)
		router.Post("", delay(latency.Create), controller.create)
		router.Put("reorder", controller.reorder)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("toggle-status", controller.toggleStatus)
			idRoute.Get("candidates", delay(latency.Candidates), controller.candidates)
			idRoute.Get("candidates/export", controller.exportCandidates)
			idRoute.Get("board", controller.board)
		})
	})
}

// @Summary Список вакансий
// @Tags Вакансия
// @Description Фильтрация, сортировка и постраничный вывод
// @Param   page		query	int		false	"страница"
// @Param   limit		query	int		false	"записей на странице"
// @Param   status		query	string	false	"active, archived, all"
// @Param   search		query	string	false	"поиск по названию и slug"
// @Param   tags		query	string	false	"теги через запятую"
// @Param   sortBy		query	string	false	"поле сортировки"
// @Param   sortOrder	query	string	false	"asc, desc"
// @Success 200 {object} query.Page[jobapimodels.JobView]
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs [get]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	req := query.ParseRequest(queryGetter(ctx), query.Defaults{SortBy: jobhandler.JobAccessor.DefaultSort})
	resp, err := jobhandler.Instance.List(req)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вакансий")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Количество вакансий
// @Tags Вакансия
// @Success 200 {object} jobapimodels.CountView
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/count [get]
func (c *jobApiController) count(ctx *fiber.Ctx) error {
	count, err := jobhandler.Instance.Count()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения количества вакансий")
	}
	return ctx.Status(fiber.StatusOK).JSON(jobapimodels.CountView{Count: count})
}

// @Summary Создание вакансии
// @Tags Вакансия
// @Description slug формируется из названия, если не передан
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 201 {object} jobapimodels.JobView
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := jobhandler.Instance.Create(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания вакансии")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

// @Summary Получение вакансии
// @Tags Вакансия
// @Param   id	path	int	true	"ID вакансии"
// @Success 200 {object} jobapimodels.JobView
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetIntID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Изменение вакансии
// @Tags Вакансия
// @Description Частичное изменение, не переданные поля не меняются
// @Param   id	path	int	true	"ID вакансии"
// @Param	body body	 jobapimodels.JobUpdate	true	"request body"
// @Success 200 {object} jobapimodels.JobView
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [put]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetIntID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.JobUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := jobhandler.Instance.Update(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения вакансии")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Изменение порядка вакансий
// @Tags Вакансия
// @Param	body body	 jobapimodels.ReorderRequest	true	"request body"
// @Success 200 {object} jobapimodels.MessageView
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/reorder [put]
func (c *jobApiController) reorder(ctx *fiber.Ctx) error {
	var payload jobapimodels.ReorderRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := jobhandler.Instance.Reorder(payload.Items); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения порядка вакансий")
	}
	return ctx.Status(fiber.StatusOK).JSON(jobapimodels.MessageView{Message: "Порядок вакансий изменен"})
}

// @Summary Переключение статуса
// @Tags Вакансия
// @Description active <-> archived
// @Param   id	path	int	true	"ID вакансии"
// @Success 200 {object} jobapimodels.JobView
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/toggle-status [put]
func (c *jobApiController) toggleStatus(ctx *fiber.Ctx) error {
	id, err := c.GetIntID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobhandler.Instance.ToggleStatus(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения статуса вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Удаление вакансии
// @Tags Вакансия
// @Param   id	path	int	true	"ID вакансии"
// @Success 200 {object} jobapimodels.MessageView
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [delete]
func (c *jobApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetIntID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = jobhandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(jobapimodels.MessageView{Message: "Вакансия удалена"})
}

// @Summary Кандидаты вакансии
// @Tags Вакансия
// @Param   id	path	int	true	"ID вакансии"
// @Success 200 {object} candidateapimodels.CandidateList
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/candidates [get]
func (c *jobApiController) candidates(ctx *fiber.Ctx) error {
	id, err := c.GetIntID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := candidatehandler.Instance.ListByJob(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения кандидатов вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(candidateapimodels.CandidateList{Data: list})
}

// @Summary Выгрузка кандидатов вакансии в Excel
// @Tags Вакансия
// @Param   id	path	int	true	"ID вакансии"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/candidates/export [get]
func (c *jobApiController) exportCandidates(ctx *fiber.Ctx) error {
	id, err := c.GetIntID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := candidatehandler.Instance.ListByJob(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения кандидатов вакансии")
	}
	data, err := xlsexport.Instance.ExportCandidateList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки кандидатов в Excel")
	}
	fileName := fmt.Sprintf("candidates-%v-%v.xlsx", id, time.Now().Format("20060102-150405"))
	return sendXlsx(ctx, fileName, data.Bytes())
}

// @Summary Доска подбора вакансии
// @Tags Вакансия
// @Description Кандидаты по колонкам этапов
// @Param   id	path	int	true	"ID вакансии"
// @Success 200 {object} candidateapimodels.BoardView
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/board [get]
func (c *jobApiController) board(ctx *fiber.Ctx) error {
	id, err := c.GetIntID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.Board(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доски подбора")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

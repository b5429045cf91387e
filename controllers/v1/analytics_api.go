package apiv1

import (
	"fmt"
	"talentflow-backend/controllers"
	"talentflow-backend/lib/analytics"
	apimodels "talentflow-backend/models/api"
	"time"

	"github.com/gofiber/fiber/v2"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app fiber.Router) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Get("funnel", controller.funnel)
		router.Get("funnel/export", controller.funnelExport)
	})
}

// @Summary Воронка подбора
// @Tags Аналитика
// @Param   jobId	query	int	false	"ID вакансии, без него по всем вакансиям"
// @Success 200 {object} analyticsapimodels.FunnelView
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/funnel [get]
func (c *analyticsApiController) funnel(ctx *fiber.Ctx) error {
	jobID, err := c.optionalJobID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := analytics.Instance.Funnel(jobID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения воронки подбора")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Выгрузка воронки подбора в Excel
// @Tags Аналитика
// @Param   jobId	query	int	false	"ID вакансии"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/funnel/export [get]
func (c *analyticsApiController) funnelExport(ctx *fiber.Ctx) error {
	jobID, err := c.optionalJobID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := analytics.Instance.FunnelExportToXls(jobID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки воронки в Excel")
	}
	fileName := fmt.Sprintf("funnel-%v.xlsx", time.Now().Format("20060102-150405"))
	return sendXlsx(ctx, fileName, data.Bytes())
}

func (c *analyticsApiController) optionalJobID(ctx *fiber.Ctx) (*int, error) {
	if ctx.Query("jobId") == "" {
		return nil, nil
	}
	jobID, err := c.GetIntQuery(ctx, "jobId")
	if err != nil {
		return nil, err
	}
	return &jobID, nil
}

package ws

import (
	"strconv"
	wsclient "talentflow-backend/lib/ws/client"
	connectionhub "talentflow-backend/lib/ws/hub/connection-hub"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(router fiber.Router) {
	router.Get("/board/:jobId", upgradeCheck, websocket.New(boardHandler))
}

func upgradeCheck(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	jobID, err := strconv.Atoi(ctx.Params("jobId"))
	if err != nil || jobID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "некорректный идентификатор вакансии")
	}
	ctx.Locals("jobID", jobID)
	return ctx.Next()
}

// @Summary События доски подбора
// @Tags Websocket
// @Description Изменения этапов кандидатов вакансии
// @Param   jobId          path    int     true         "ID вакансии"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 426
// @router /ws/board/{jobId} [get]
func boardHandler(c *websocket.Conn) {
	jobID := c.Locals("jobID").(int)
	client := wsclient.NewClient(jobID, c)
	sessionID := connectionhub.Instance.AddClient(jobID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(jobID, sessionID)
	}()
	client.Dispatch()
}

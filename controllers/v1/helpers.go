package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

const mimeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func queryGetter(ctx *fiber.Ctx) func(key string) string {
	return func(key string) string {
		return ctx.Query(key)
	}
}

func sendXlsx(ctx *fiber.Ctx, fileName string, body []byte) error {
	ctx.Set(fiber.HeaderContentType, mimeXlsx)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}

func sendPdf(ctx *fiber.Ctx, fileName string, body []byte) error {
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}

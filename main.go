package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"talentflow-backend/config"
	apiv1 "talentflow-backend/controllers/v1"
	"talentflow-backend/fiberlog"
	"talentflow-backend/initializers"
	"talentflow-backend/lib/ws"
	connectionhub "talentflow-backend/lib/ws/hub/connection-hub"
	"talentflow-backend/middleware"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimit,
	})
	app.Use(fiberRecover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))

	if _, err := os.Stat(config.Conf.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: config.Conf.Swagger.FilePath,
		}))
	} else {
		log.WithField("file", config.Conf.Swagger.FilePath).Warn("описание API не найдено, swagger отключен")
	}

	//api
	latency := routeLatency()
	initApiRouters(app.Group("/api/v1"), latency)
	// адрес mock API клиента прототипа
	initApiRouters(app.Group("/mock"), latency)

	//websocket
	ws.InitWs(app.Group("/ws"))

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("Gracefully shutting down...")
		cancel()
		connectionhub.Instance.Close()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Error(err)
	}
	cancel()

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}

func initApiRouters(api fiber.Router, latency apiv1.Latency) {
	api.Use(middleware.WithBodyLimit(int64(config.Conf.App.BodyLimit)))
	api.Use(middleware.ErrNotify(config.Conf.ErrNotify.Addr))
	api.Use(fiberlog.New(*initializers.LoggerConfig))
	apiv1.InitJobApiRouters(api, latency)
	apiv1.InitCandidateApiRouters(api, latency)
	apiv1.InitAssessmentApiRouters(api, latency)
	apiv1.InitResponseApiRouters(api, latency)
	apiv1.InitPublicApiRouters(api)
	apiv1.InitAiApiRouters(api)
	apiv1.InitAnalyticsApiRouters(api)
}

func routeLatency() apiv1.Latency {
	conf := config.Conf.Latency
	if !*conf.Enabled {
		return apiv1.Latency{}
	}
	return apiv1.Latency{
		List:             time.Duration(conf.ListMs) * time.Millisecond,
		Count:            time.Duration(conf.CountMs) * time.Millisecond,
		Create:           time.Duration(conf.CreateMs) * time.Millisecond,
		Candidates:       time.Duration(conf.CandidatesMs) * time.Millisecond,
		AssessmentCreate: time.Duration(conf.AssessmentCreateMs) * time.Millisecond,
	}
}

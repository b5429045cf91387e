package initializers

import (
	"context"
	"talentflow-backend/config"
	"talentflow-backend/fiberlog"
	"talentflow-backend/lib/analytics"
	assessmenthandler "talentflow-backend/lib/assessment"
	candidatehandler "talentflow-backend/lib/candidate"
	xlsexport "talentflow-backend/lib/export/xls"
	filestorage "talentflow-backend/lib/file-storage"
	gpthandler "talentflow-backend/lib/gpt"
	jobhandler "talentflow-backend/lib/job"
	responsehandler "talentflow-backend/lib/response"
	"talentflow-backend/lib/utils/lock"
	connectionhub "talentflow-backend/lib/ws/hub/connection-hub"
	s3client "talentflow-backend/s3"
	"time"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	lock.InitResourceLock(ctx)
	filestorage.NewHandler()
	xlsexport.NewHandler()
	jobhandler.NewHandler()
	candidatehandler.NewHandler()
	assessmenthandler.NewHandler()
	responsehandler.NewHandler()
	gpthandler.NewHandler()
	analytics.NewHandler()
	go initBucket(ctx)
}

// бакет для архива тестов создаем в фоне, чтобы недоступный S3 не задерживал старт
func initBucket(ctx context.Context) {
	if s3client.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := filestorage.Instance.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("ошибка создания бакета S3")
	}
}

package initializers

import (
	"context"
	"talentflow-backend/config"
	s3client "talentflow-backend/s3"
	"time"

	log "github.com/sirupsen/logrus"
)

func InitS3() {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, архивирование тестов недоступно")
		return
	}
	minioClient, err := s3client.NewClient(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = minioClient.ListBuckets(ctx)
	if err != nil {
		log.WithError(err).Error("S3 соединение не удалось, ListBuckets вернул ошибку")
	}

	s3client.Client = minioClient
	log.Info("S3 клиент успешно инициализирован")
}

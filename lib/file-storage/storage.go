package filestorage

import (
	"bytes"
	"context"
	"io"
	"talentflow-backend/config"
	"talentflow-backend/models"
	s3client "talentflow-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	UploadFile(ctx context.Context, key string, body []byte, contentType string) error
	GetFile(ctx context.Context, key string) ([]byte, error)
	MakeBucket(ctx context.Context) error
}

var Instance Provider

type impl struct {
	s3client   *minio.Client
	bucketName string
}

// NewHandler без клиента S3 хранилище недоступно, операции возвращают models.ErrNotConfigured
func NewHandler() {
	Instance = NewInstance(s3client.Client, config.Conf.S3.BucketName)
}

func NewInstance(client *minio.Client, bucketName string) Provider {
	return &impl{
		s3client:   client,
		bucketName: bucketName,
	}
}

func (i impl) UploadFile(ctx context.Context, key string, body []byte, contentType string) error {
	if i.s3client == nil {
		return errors.Wrap(models.ErrNotConfigured, "S3 не настроен")
	}
	if err := i.MakeBucket(ctx); err != nil {
		return err
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки файла в S3")
	}
	log.
		WithField("bucket", i.bucketName).
		WithField("key", key).
		Info("файл загружен в S3")
	return nil
}

func (i impl) GetFile(ctx context.Context, key string) ([]byte, error) {
	if i.s3client == nil {
		return nil, errors.Wrap(models.ErrNotConfigured, "S3 не настроен")
	}
	object, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из S3")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, models.NotFound("файл не найден")
		}
		return nil, errors.Wrap(err, "ошибка чтения файла из S3")
	}
	return body, nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	if i.s3client == nil {
		return errors.Wrap(models.ErrNotConfigured, "S3 не настроен")
	}
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки бакета S3")
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return errors.Wrap(err, "ошибка создания бакета S3")
	}
	return nil
}

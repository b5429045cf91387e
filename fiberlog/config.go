package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки логирования запросов
type Config struct {
	// Logger если nil, используется стандартный логгер logrus
	Logger *logrus.Logger
	// Tags поля записи, см. Tag* константы
	Tags []string
	// Skip пропускает запись для запроса, например для проверки живости
	Skip func(path string) bool
}

// ConfigDefault набор полей без тел запроса и ответа
var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}

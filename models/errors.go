package models

import "github.com/pkg/errors"

// ErrNotFound запись не найдена, отдается клиенту как 404
var ErrNotFound = errors.New("запись не найдена")

// ErrGeneration ошибка внешнего генератора (ИИ), отдается клиенту как 502
var ErrGeneration = errors.New("ошибка генерации")

// ErrNotConfigured внешний сервис не настроен, отдается клиенту как 503
var ErrNotConfigured = errors.New("сервис не настроен")

type notFoundError struct {
	message string
}

func (e notFoundError) Error() string {
	return e.message
}

func (e notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound ошибка "не найдено" с сообщением для клиента, errors.Is(err, ErrNotFound) == true
func NotFound(message string) error {
	return notFoundError{message: message}
}

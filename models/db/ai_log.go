package dbmodels

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AiLog журнал обращений к генератору тестов
type AiLog struct {
	ID         string       `gorm:"primaryKey;type:varchar(64)"`
	CreatedAt  time.Time    `gorm:"index"`
	JobID      int          `gorm:"index" comment:"Идентификатор вакансии"`
	SysPromt   string       `comment:"System промт"`
	UserPromt  string       `comment:"User промт"`
	Answer     string       `comment:"Ответ ИИ"`
	Error      string       `comment:"Ошибка генерации"`
	ReqestType AiReqestType `gorm:"type:varchar(255)" comment:"Тип запроса к ИИ"`
	AiName     AiName       `gorm:"type:varchar(255)" comment:"Название ИИ"`
}

func (a *AiLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type AiName string

const (
	AiYaGptType AiName = "yandexgpt"
)

type AiReqestType string

const (
	AiAssessmentType AiReqestType = "Assessment"
)

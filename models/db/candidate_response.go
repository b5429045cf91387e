package dbmodels

import (
	"database/sql/driver"
	"time"
)

type CandidateResponse struct {
	ID               string `gorm:"primaryKey;type:varchar(64)"`
	AssessmentID     string `gorm:"type:varchar(64);index"`
	JobID            string `gorm:"type:varchar(64);index"`
	CandidateName    string `gorm:"type:varchar(255)"`
	CandidateEmail   string `gorm:"type:varchar(255)"`
	SubmittedAt      time.Time
	Responses        ResponseAnswers `gorm:"type:text"`
	CompletionStatus string          `gorm:"type:varchar(50)"`
}

// ResponseAnswers ответы кандидата: идентификатор вопроса -> значение
type ResponseAnswers map[string]any

func (j ResponseAnswers) Value() (driver.Value, error) {
	if j == nil {
		j = ResponseAnswers{}
	}
	return jsonValue(j)
}

func (j *ResponseAnswers) Scan(value interface{}) error {
	return jsonScan(value, j)
}

package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Assessment struct {
	ID        string         `gorm:"primaryKey;type:varchar(64)"`
	JobID     int            `gorm:"index"`
	Data      AssessmentData `gorm:"type:text"`
	Published bool
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AssessmentData документ теста в исходном виде, структура не проверяется хранилищем
type AssessmentData json.RawMessage

func (j AssessmentData) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "null", nil
	}
	return string(j), nil
}

func (j *AssessmentData) Scan(value interface{}) error {
	switch data := value.(type) {
	case []byte:
		*j = append((*j)[:0], data...)
	case string:
		*j = AssessmentData(data)
	default:
		*j = nil
	}
	return nil
}

func (j AssessmentData) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *AssessmentData) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

// IsEmpty документ отсутствует или null
func (j AssessmentData) IsEmpty() bool {
	return len(j) == 0 || string(j) == "null"
}

package dbmodels

import (
	"talentflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Candidate struct {
	ID    string                `gorm:"primaryKey;type:varchar(64)"`
	Name  string                `gorm:"type:varchar(255)"`
	Email string                `gorm:"type:varchar(255)"`
	JobID int                   `gorm:"index"` // ссылка на вакансию, целостность не контролируется
	Stage models.CandidateStage `gorm:"type:varchar(20);index"`
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

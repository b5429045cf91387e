package dbmodels

import (
	"database/sql/driver"
	"talentflow-backend/models"
	"time"
)

type Job struct {
	ID        int              `gorm:"primaryKey;autoIncrement"`
	Title     string           `gorm:"type:varchar(255);index"`
	Slug      string           `gorm:"type:varchar(255);uniqueIndex"`
	Status    models.JobStatus `gorm:"type:varchar(20);index"`
	Tags      JobTags          `gorm:"type:text"`
	Order     int              `gorm:"column:job_order;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type JobTags []string

func (j JobTags) Value() (driver.Value, error) {
	if j == nil {
		j = JobTags{}
	}
	return jsonValue(j)
}

func (j *JobTags) Scan(value interface{}) error {
	return jsonScan(value, j)
}

// Has тег присутствует в наборе
func (j JobTags) Has(tag string) bool {
	for _, t := range j {
		if t == tag {
			return true
		}
	}
	return false
}

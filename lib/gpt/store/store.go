package ailogstore

import (
	dbmodels "talentflow-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Save(rec dbmodels.AiLog) (string, error)
	ListByJob(jobID int) ([]dbmodels.AiLog, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.AiLog) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByJob(jobID int) (list []dbmodels.AiLog, err error) {
	list = []dbmodels.AiLog{}
	err = i.db.
		Model(&dbmodels.AiLog{}).
		Where("job_id = ?", jobID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

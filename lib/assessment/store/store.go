package assessmentstore

import (
	dbmodels "talentflow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Assessment) (id string, err error)
	GetByID(id string) (*dbmodels.Assessment, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ListByJob(jobID int) (list []dbmodels.Assessment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Assessment) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Assessment, error) {
	rec := dbmodels.Assessment{}
	err := i.db.
		Model(&dbmodels.Assessment{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Assessment{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Assessment{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByJob(jobID int) (list []dbmodels.Assessment, err error) {
	list = []dbmodels.Assessment{}
	err = i.db.
		Model(&dbmodels.Assessment{}).
		Where("job_id = ?", jobID).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

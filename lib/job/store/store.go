package jobstore

import (
	dbmodels "talentflow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Job) (*dbmodels.Job, error)
	GetByID(id int) (*dbmodels.Job, error)
	GetBySlug(slug string) (*dbmodels.Job, error)
	Update(id int, updMap map[string]interface{}) error
	Delete(id int) error
	List() (list []dbmodels.Job, err error)
	Count() (count int64, err error)
	MaxOrder() (int, error)
	Exists(id int) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Job) (*dbmodels.Job, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByID(id int) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
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

func (i impl) GetBySlug(slug string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
		Where("slug = ?", slug).
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

func (i impl) Update(id int, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id int) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Job{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	err = i.db.
		Model(&dbmodels.Job{}).
		Order("job_order asc, id asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Count() (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Job{}).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) MaxOrder() (int, error) {
	var maxOrder int
	err := i.db.
		Model(&dbmodels.Job{}).
		Select("coalesce(max(job_order), 0)").
		Scan(&maxOrder).
		Error
	if err != nil {
		return 0, err
	}
	return maxOrder, nil
}

func (i impl) Exists(id int) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

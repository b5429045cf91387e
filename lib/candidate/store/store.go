package candidatestore

import (
	"talentflow-backend/models"
	dbmodels "talentflow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (*dbmodels.Candidate, error)
	GetByID(id string) (*dbmodels.Candidate, error)
	UpdateStage(id string, stage models.CandidateStage) error
	Delete(id string) error
	List() (list []dbmodels.Candidate, err error)
	ListByJob(jobID int) (list []dbmodels.Candidate, err error)
	StageCounts(jobID *int) (map[models.CandidateStage]int, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (*dbmodels.Candidate, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
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

func (i impl) UpdateStage(id string, stage models.CandidateStage) error {
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Update("stage", stage).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Candidate{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

// List порядок вставки (rowid в sqlite), как в исходной коллекции
func (i impl) List() (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	err = i.db.
		Model(&dbmodels.Candidate{}).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByJob(jobID int) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	err = i.db.
		Model(&dbmodels.Candidate{}).
		Where("job_id = ?", jobID).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

type stageCount struct {
	Stage models.CandidateStage
	Count int
}

func (i impl) StageCounts(jobID *int) (map[models.CandidateStage]int, error) {
	rows := []stageCount{}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Select("stage, count(*) as count").
		Group("stage")
	if jobID != nil {
		tx = tx.Where("job_id = ?", *jobID)
	}
	err := tx.Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[models.CandidateStage]int, len(rows))
	for _, row := range rows {
		result[row.Stage] = row.Count
	}
	return result, nil
}

package responsestore

import (
	dbmodels "talentflow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.CandidateResponse) (*dbmodels.CandidateResponse, error)
	GetByID(id string) (*dbmodels.CandidateResponse, error)
	ListByAssessment(assessmentID string) (list []dbmodels.CandidateResponse, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.CandidateResponse) (*dbmodels.CandidateResponse, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByID(id string) (*dbmodels.CandidateResponse, error) {
	rec := dbmodels.CandidateResponse{}
	err := i.db.
		Model(&dbmodels.CandidateResponse{}).
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

func (i impl) ListByAssessment(assessmentID string) (list []dbmodels.CandidateResponse, err error) {
	list = []dbmodels.CandidateResponse{}
	err = i.db.
		Model(&dbmodels.CandidateResponse{}).
		Where("assessment_id = ?", assessmentID).
		Order("submitted_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

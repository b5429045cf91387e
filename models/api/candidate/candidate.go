package candidateapimodels

import (
	"strings"
	"talentflow-backend/models"
	dbmodels "talentflow-backend/models/db"

	"github.com/pkg/errors"
)

type CandidateData struct {
	Name  string                `json:"name"`
	Email string                `json:"email"`
	JobID int                   `json:"jobId"`
	Stage models.CandidateStage `json:"stage"`
}

func (c CandidateData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("не указано имя кандидата")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("не указан email кандидата")
	}
	if c.JobID == 0 {
		return errors.New("не указана вакансия")
	}
	if c.Stage == "" {
		return errors.New("не указан этап подбора")
	}
	return c.Stage.Validate()
}

// StagePatch частичное обновление кандидата, при отсутствии stage ничего не меняется
type StagePatch struct {
	Stage *models.CandidateStage `json:"stage"`
}

func (p StagePatch) Validate() error {
	if p.Stage == nil || *p.Stage == "" {
		return nil
	}
	return p.Stage.Validate()
}

type CandidateView struct {
	ID    string                `json:"id"`
	Name  string                `json:"name"`
	Email string                `json:"email"`
	JobID int                   `json:"jobId"`
	Stage models.CandidateStage `json:"stage"`
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	return CandidateView{
		ID:    rec.ID,
		Name:  rec.Name,
		Email: rec.Email,
		JobID: rec.JobID,
		Stage: rec.Stage,
	}
}

type CandidateList struct {
	Data []CandidateView `json:"data"`
}

type ColumnView struct {
	Stage      models.CandidateStage `json:"stage"`
	Title      string                `json:"title"`
	Candidates []CandidateView       `json:"candidates"`
}

type BoardView struct {
	JobID   int          `json:"jobId"`
	Columns []ColumnView `json:"columns"`
}

type DeleteView struct {
	Success bool `json:"success"`
}

package assessmentapimodels

import (
	"encoding/json"
	apimodels "talentflow-backend/models/api"
	dbmodels "talentflow-backend/models/db"

	"github.com/pkg/errors"
)

type AssessmentData struct {
	JobID apimodels.FlexInt `json:"jobId"`
	Data  json.RawMessage   `json:"data"`
}

func (a AssessmentData) Validate() error {
	if a.JobID == 0 {
		return errors.New("не указана вакансия")
	}
	if isEmptyDocument(a.Data) {
		return errors.New("не указан документ теста")
	}
	return nil
}

type AssessmentUpdate struct {
	Data json.RawMessage `json:"data"`
}

func (a AssessmentUpdate) Validate() error {
	if isEmptyDocument(a.Data) {
		return errors.New("не указан документ теста")
	}
	return nil
}

type AssessmentView struct {
	ID        string          `json:"id"`
	JobID     int             `json:"jobId"`
	Data      json.RawMessage `json:"data"`
	Published bool            `json:"published"`
}

func AssessmentConvert(rec dbmodels.Assessment) AssessmentView {
	data := json.RawMessage(rec.Data)
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return AssessmentView{
		ID:        rec.ID,
		JobID:     rec.JobID,
		Data:      data,
		Published: rec.Published,
	}
}

// PublishView результат переключения публикации, link заполняется только для опубликованного теста
type PublishView struct {
	AssessmentView
	Link *string `json:"link"`
}

type CreatedView struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type ArchiveView struct {
	Key string `json:"key"`
}

type GenerateRequest struct {
	Prompt string            `json:"prompt"`
	JobID  apimodels.FlexInt `json:"jobId"`
	Title  string            `json:"title"`
}

func (g GenerateRequest) Validate() error {
	if g.Prompt == "" {
		return errors.New("не указан запрос для генерации")
	}
	if g.JobID == 0 {
		return errors.New("не указана вакансия")
	}
	return nil
}

func isEmptyDocument(data json.RawMessage) bool {
	if len(data) == 0 {
		return true
	}
	switch string(data) {
	case "null", `""`, "false", "0":
		return true
	}
	return false
}

package responseapimodels

import (
	apimodels "talentflow-backend/models/api"
	dbmodels "talentflow-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

const CompletionStatusCompleted = "completed"

type CandidateInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ResponseData struct {
	AssessmentID     apimodels.FlexString `json:"assessmentId"`
	JobID            apimodels.FlexString `json:"jobId"`
	CandidateInfo    CandidateInfo        `json:"candidateInfo"`
	Responses        map[string]any       `json:"responses"`
	CompletionStatus string               `json:"completionStatus"`
}

// Validate проверяет только ссылки на тест и вакансию, ответы не проверяются
func (r ResponseData) Validate() error {
	if r.AssessmentID == "" || r.JobID == "" {
		return errors.New("не указан тест или вакансия")
	}
	return nil
}

// PublicResponseData ответы кандидата на опубликованный тест
type PublicResponseData struct {
	CandidateInfo CandidateInfo  `json:"candidateInfo"`
	Responses     map[string]any `json:"responses"`
}

type ResponseView struct {
	ID               string         `json:"id"`
	AssessmentID     string         `json:"assessmentId"`
	JobID            string         `json:"jobId"`
	CandidateInfo    CandidateInfo  `json:"candidateInfo"`
	SubmittedAt      time.Time      `json:"submittedAt"`
	Responses        map[string]any `json:"responses"`
	CompletionStatus string         `json:"completionStatus,omitempty"`
}

func ResponseConvert(rec dbmodels.CandidateResponse) ResponseView {
	responses := map[string]any(rec.Responses)
	if responses == nil {
		responses = map[string]any{}
	}
	return ResponseView{
		ID:           rec.ID,
		AssessmentID: rec.AssessmentID,
		JobID:        rec.JobID,
		CandidateInfo: CandidateInfo{
			Name:  rec.CandidateName,
			Email: rec.CandidateEmail,
		},
		SubmittedAt:      rec.SubmittedAt,
		Responses:        responses,
		CompletionStatus: rec.CompletionStatus,
	}
}

type ResponseList struct {
	Data []ResponseView `json:"data"`
}

// ValidationFailure ответ на отправку с незаполненными обязательными вопросами
type ValidationFailure struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Missing []string `json:"missing"`
}

package wsmodels

const (
	CodeCandidateStageChanged = "candidate_stage_changed"
	CodeCandidateDeleted      = "candidate_deleted"
	CodeCandidateCreated      = "candidate_created"
)

type ServerMessage struct {
	JobID       int    `json:"jobId"`
	Time        string `json:"time"`                  // время события
	Code        string `json:"code"`                  // код события
	CandidateID string `json:"candidateId,omitempty"` // кандидат
	Stage       string `json:"stage,omitempty"`       // новый этап
}

package analyticsapimodels

import "talentflow-backend/models"

type FunnelStage struct {
	Stage      models.CandidateStage `json:"stage"`
	Name       string                `json:"name"`
	Count      int                   `json:"count"`
	Percentage float64               `json:"percentage"`
	// ConversionRate доля от предыдущего этапа, для первого этапа не заполняется
	ConversionRate *float64 `json:"conversionRate,omitempty"`
}

type FunnelView struct {
	JobID          *int          `json:"jobId,omitempty"`
	Total          int           `json:"total"`
	Hired          int           `json:"hired"`
	Rejected       int           `json:"rejected"`
	ActivePipeline int           `json:"activePipeline"`
	ConversionRate float64       `json:"conversionRate"`
	Stages         []FunnelStage `json:"stages"`
}

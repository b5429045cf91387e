package analytics

import (
	"bytes"
	"talentflow-backend/db"
	candidatestore "talentflow-backend/lib/candidate/store"
	xlsexport "talentflow-backend/lib/export/xls"
	initchecker "talentflow-backend/lib/utils/init-checker"
	"talentflow-backend/models"
	analyticsapimodels "talentflow-backend/models/api/analytics"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Funnel(jobID *int) (analyticsapimodels.FunnelView, error)
	FunnelExportToXls(jobID *int) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, xlsexport.Instance)
}

func NewInstance(DB *gorm.DB, exporter xlsexport.Provider) Provider {
	instance := impl{
		candidateStore: candidatestore.NewInstance(DB),
		exporter:       exporter,
	}
	initchecker.CheckInit(
		"exporter", instance.exporter,
	)
	return instance
}

// этапы воронки, rejected считается отдельно
var funnelStages = []models.CandidateStage{
	models.CandidateStageApplied,
	models.CandidateStageScreen,
	models.CandidateStageTech,
	models.CandidateStageOffer,
	models.CandidateStageHired,
}

type impl struct {
	candidateStore candidatestore.Provider
	exporter       xlsexport.Provider
}

// Funnel воронка подбора по текущим этапам кандидатов. Applied = все кандидаты,
// для остальных этапов доля от всех и конверсия от предыдущего этапа
func (i impl) Funnel(jobID *int) (analyticsapimodels.FunnelView, error) {
	counts, err := i.candidateStore.StageCounts(jobID)
	if err != nil {
		return analyticsapimodels.FunnelView{}, errors.Wrap(err, "ошибка получения количества кандидатов по этапам")
	}
	return BuildFunnel(jobID, counts), nil
}

func BuildFunnel(jobID *int, counts map[models.CandidateStage]int) analyticsapimodels.FunnelView {
	result := analyticsapimodels.FunnelView{
		JobID:  jobID,
		Stages: []analyticsapimodels.FunnelStage{},
	}
	for _, count := range counts {
		result.Total += count
	}
	result.Hired = counts[models.CandidateStageHired]
	result.Rejected = counts[models.CandidateStageRejected]
	result.ActivePipeline = result.Total - result.Hired - result.Rejected
	if result.Total == 0 {
		return result
	}
	result.ConversionRate = percent(result.Hired, result.Total)

	prev := result.Total
	for _, stage := range funnelStages {
		item := analyticsapimodels.FunnelStage{
			Stage: stage,
			Name:  stage.Title(),
		}
		if stage == models.CandidateStageApplied {
			item.Count = result.Total
			item.Percentage = 100
		} else {
			item.Count = counts[stage]
			item.Percentage = percent(item.Count, result.Total)
			rate := percent(item.Count, prev)
			item.ConversionRate = &rate
			prev = item.Count
		}
		result.Stages = append(result.Stages, item)
	}
	return result
}

func percent(value, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(value) / float64(total) * 100
}

func (i impl) FunnelExportToXls(jobID *int) (*bytes.Buffer, error) {
	funnel, err := i.Funnel(jobID)
	if err != nil {
		return nil, err
	}
	return i.exporter.ExportFunnel(funnel)
}

package models

import (
	"strings"

	"github.com/pkg/errors"
)

type CandidateStage string

const (
	CandidateStageApplied  CandidateStage = "applied"
	CandidateStageScreen   CandidateStage = "screen"
	CandidateStageTech     CandidateStage = "tech"
	CandidateStageOffer    CandidateStage = "offer"
	CandidateStageHired    CandidateStage = "hired"
	CandidateStageRejected CandidateStage = "rejected"
)

// CandidateStages порядок колонок на доске подбора
var CandidateStages = []CandidateStage{
	CandidateStageApplied,
	CandidateStageScreen,
	CandidateStageTech,
	CandidateStageOffer,
	CandidateStageHired,
	CandidateStageRejected,
}

func (s CandidateStage) Validate() error {
	for _, stage := range CandidateStages {
		if s == stage {
			return nil
		}
	}
	return errors.Errorf("неизвестный этап подбора: %v", s)
}

// Title название колонки доски
func (s CandidateStage) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

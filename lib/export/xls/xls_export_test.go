package xlsexport

import (
	"bytes"
	"testing"
	"time"

	"talentflow-backend/models"
	analyticsapimodels "talentflow-backend/models/api/analytics"
	candidateapimodels "talentflow-backend/models/api/candidate"
	responseapimodels "talentflow-backend/models/api/response"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, buf *bytes.Buffer, sheetName string) [][]string {
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestExportCandidateList(t *testing.T) {
	buf, err := impl{}.ExportCandidateList([]candidateapimodels.CandidateView{
		{ID: "c1", Name: "Ann", Email: "ann@example.com", JobID: 3, Stage: models.CandidateStageTech},
	})
	require.NoError(t, err)
	rows := readRows(t, buf, "Кандидаты")
	require.Len(t, rows, 2)
	require.Equal(t, candidateHeaders, rows[0])
	require.Equal(t, []string{"c1", "Ann", "ann@example.com", "3", "tech"}, rows[1])
}

func TestExportResponseList(t *testing.T) {
	list := []responseapimodels.ResponseView{
		{
			ID:            "r1",
			CandidateInfo: responseapimodels.CandidateInfo{Name: "Ann", Email: "ann@example.com"},
			SubmittedAt:   time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
			Responses: map[string]any{
				"q1":    "Go",
				"q2":    []any{"a", "b"},
				"extra": 5.0,
			},
			CompletionStatus: responseapimodels.CompletionStatusCompleted,
		},
	}
	buf, err := impl{}.ExportResponseList(list, []Column{{ID: "q1", Title: "Language"}, {ID: "q2"}})
	require.NoError(t, err)
	rows := readRows(t, buf, "Ответы")
	require.Len(t, rows, 2)
	require.Equal(t, []string{"ID", "Кандидат", "Email", "Дата отправки", "Статус", "Language", "q2", "extra"}, rows[0])
	require.Equal(t, []string{"r1", "Ann", "ann@example.com", "01.05.2024 10:30", "completed", "Go", "a, b", "5"}, rows[1])
}

func TestExportFunnel(t *testing.T) {
	rate := 50.0
	buf, err := impl{}.ExportFunnel(analyticsapimodels.FunnelView{
		Total: 4,
		Stages: []analyticsapimodels.FunnelStage{
			{Stage: models.CandidateStageApplied, Name: "Applied", Count: 4, Percentage: 100},
			{Stage: models.CandidateStageScreen, Name: "Screen", Count: 2, Percentage: 50, ConversionRate: &rate},
		},
	})
	require.NoError(t, err)
	rows := readRows(t, buf, "Воронка")
	require.Equal(t, funnelHeaders, rows[0])
	require.Equal(t, []string{"Applied", "4", "100"}, rows[1][:3])
	require.Equal(t, []string{"Screen", "2", "50", "50"}, rows[2])
}

package xlsexport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	analyticsapimodels "talentflow-backend/models/api/analytics"
	candidateapimodels "talentflow-backend/models/api/candidate"
	responseapimodels "talentflow-backend/models/api/response"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportCandidateList(list []candidateapimodels.CandidateView) (*bytes.Buffer, error)
	ExportResponseList(list []responseapimodels.ResponseView, questions []Column) (*bytes.Buffer, error)
	ExportFunnel(funnel analyticsapimodels.FunnelView) (*bytes.Buffer, error)
}

// Column колонка ответа на вопрос: id вопроса и заголовок
type Column struct {
	ID    string
	Title string
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

const sheet = "Sheet1"

var candidateHeaders = []string{"ID", "Имя", "Email", "Вакансия", "Этап"}

func (i impl) ExportCandidateList(list []candidateapimodels.CandidateView) (*bytes.Buffer, error) {
	return build("Кандидаты", candidateHeaders, len(list), func(f *excelize.File, row int) (int, error) {
		for _, item := range list {
			row++
			values := []interface{}{item.ID, item.Name, item.Email, item.JobID, string(item.Stage)}
			if err := writeRow(f, row, values); err != nil {
				return row, err
			}
		}
		return row, nil
	})
}

// ExportResponseList ответы кандидатов, колонки вопросов в порядке questions.
// Ответы на вопросы, которых нет в questions, добавляются в конец по алфавиту id
func (i impl) ExportResponseList(list []responseapimodels.ResponseView, questions []Column) (*bytes.Buffer, error) {
	questions = appendUnknownColumns(list, questions)
	headers := []string{"ID", "Кандидат", "Email", "Дата отправки", "Статус"}
	for _, question := range questions {
		title := question.Title
		if title == "" {
			title = question.ID
		}
		headers = append(headers, title)
	}
	return build("Ответы", headers, len(list), func(f *excelize.File, row int) (int, error) {
		for _, item := range list {
			row++
			values := []interface{}{
				item.ID,
				item.CandidateInfo.Name,
				item.CandidateInfo.Email,
				item.SubmittedAt.Format("02.01.2006 15:04"),
				item.CompletionStatus,
			}
			for _, question := range questions {
				values = append(values, answerText(item.Responses[question.ID]))
			}
			if err := writeRow(f, row, values); err != nil {
				return row, err
			}
		}
		return row, nil
	})
}

var funnelHeaders = []string{"Этап", "Кандидатов", "Доля, %", "Конверсия, %"}

func (i impl) ExportFunnel(funnel analyticsapimodels.FunnelView) (*bytes.Buffer, error) {
	return build("Воронка", funnelHeaders, len(funnel.Stages), func(f *excelize.File, row int) (int, error) {
		for _, stage := range funnel.Stages {
			row++
			values := []interface{}{stage.Name, stage.Count, stage.Percentage, ""}
			if stage.ConversionRate != nil {
				values[3] = *stage.ConversionRate
			}
			if err := writeRow(f, row, values); err != nil {
				return row, err
			}
		}
		row += 2
		if err := writeRow(f, row, []interface{}{"Всего", funnel.Total}); err != nil {
			return row, err
		}
		row++
		if err := writeRow(f, row, []interface{}{"Общая конверсия, %", funnel.ConversionRate}); err != nil {
			return row, err
		}
		return row, nil
	})
}

func build(sheetName string, headers []string, rows int, writeData func(f *excelize.File, row int) (int, error)) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	row := 0
	row, err := writeHeader(f, sheet, row, headers)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if rows != 0 {
		if err = applyDataCellStyle(f, sheet, 1, row+1, len(headers), row+rows); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if _, err = writeData(f, row); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
	}
	if err = f.SetSheetName(sheet, sheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	return f.WriteToBuffer()
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	for idx, value := range values {
		if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
			return err
		}
	}
	return nil
}

func appendUnknownColumns(list []responseapimodels.ResponseView, questions []Column) []Column {
	known := map[string]bool{}
	for _, question := range questions {
		known[question.ID] = true
	}
	extra := []string{}
	for _, item := range list {
		for id := range item.Responses {
			if !known[id] {
				known[id] = true
				extra = append(extra, id)
			}
		}
	}
	sort.Strings(extra)
	result := append([]Column{}, questions...)
	for _, id := range extra {
		result = append(result, Column{ID: id})
	}
	return result
}

func answerText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, answerText(item))
		}
		return strings.Join(items, ", ")
	case []string:
		return strings.Join(v, ", ")
	case float64, bool, int:
		return fmt.Sprint(v)
	}
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(body)
}

package responsehandler

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"talentflow-backend/config"
	"talentflow-backend/db"
	"talentflow-backend/lib/assessment/builder"
	assessmentstore "talentflow-backend/lib/assessment/store"
	xlsexport "talentflow-backend/lib/export/xls"
	responsestore "talentflow-backend/lib/response/store"
	"talentflow-backend/lib/smtp"
	"talentflow-backend/models"
	apimodels "talentflow-backend/models/api"
	responseapimodels "talentflow-backend/models/api/response"
	dbmodels "talentflow-backend/models/db"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(data responseapimodels.ResponseData) (responseapimodels.ResponseView, error)
	PublicSubmit(assessmentID string, data responseapimodels.PublicResponseData) (view responseapimodels.ResponseView, validation *builder.ValidationResult, err error)
	List(assessmentID string) ([]responseapimodels.ResponseView, error)
	Export(assessmentID string) (*bytes.Buffer, error)
}

// Mailer уведомление рекрутера о новом ответе
type Mailer interface {
	SendEMail(from, to, message, subject string) error
	Configured() bool
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, xlsexport.Instance, smtp.Instance, config.Conf.Notify.RecruiterEmail)
}

func NewInstance(DB *gorm.DB, exporter xlsexport.Provider, mailer Mailer, recruiterEmail string) Provider {
	return impl{
		store:           responsestore.NewInstance(DB),
		assessmentStore: assessmentstore.NewInstance(DB),
		exporter:        exporter,
		mailer:          mailer,
		recruiterEmail:  recruiterEmail,
	}
}

type impl struct {
	store           responsestore.Provider
	assessmentStore assessmentstore.Provider
	exporter        xlsexport.Provider
	mailer          Mailer
	recruiterEmail  string
}

func (i impl) getLogger(assessmentID string) *log.Entry {
	logger := log.WithField("handler", "response")
	if assessmentID != "" {
		logger = logger.WithField("assessment_id", assessmentID)
	}
	return logger
}

// Create сохраняет ответ как есть: публикация теста и обязательные вопросы не проверяются
func (i impl) Create(data responseapimodels.ResponseData) (responseapimodels.ResponseView, error) {
	rec := dbmodels.CandidateResponse{
		ID:               uuid.NewString(),
		AssessmentID:     string(data.AssessmentID),
		JobID:            string(data.JobID),
		CandidateName:    data.CandidateInfo.Name,
		CandidateEmail:   data.CandidateInfo.Email,
		SubmittedAt:      time.Now(),
		Responses:        data.Responses,
		CompletionStatus: data.CompletionStatus,
	}
	saved, err := i.store.Create(rec)
	if err != nil {
		return responseapimodels.ResponseView{}, errors.Wrap(err, "ошибка сохранения ответа на тест")
	}
	i.getLogger(rec.AssessmentID).WithField("response_id", rec.ID).Info("сохранен ответ на тест")
	return responseapimodels.ResponseConvert(*saved), nil
}

// PublicSubmit ответ кандидата на опубликованный тест. При незаполненных обязательных
// вопросах ответ не сохраняется, возвращается результат проверки
func (i impl) PublicSubmit(assessmentID string, data responseapimodels.PublicResponseData) (view responseapimodels.ResponseView, validation *builder.ValidationResult, err error) {
	logger := i.getLogger(assessmentID)
	assessment, err := i.assessmentStore.GetByID(assessmentID)
	if err != nil {
		return view, nil, errors.Wrap(err, "ошибка получения теста")
	}
	if assessment == nil || !assessment.Published {
		return view, nil, models.NotFound("тест не найден")
	}
	doc := builder.Document{}
	if !assessment.Data.IsEmpty() {
		doc, err = builder.Parse(assessment.Data)
		if err != nil {
			return view, nil, errors.Wrap(err, "ошибка разбора документа теста")
		}
	}
	result := builder.Validate(doc, data.Responses)
	if !result.Valid {
		logger.WithField("missing", result.Missing).Info("ответ на тест не прошел проверку")
		return view, &result, nil
	}
	view, err = i.Create(responseapimodels.ResponseData{
		AssessmentID:     apimodels.FlexString(assessmentID),
		JobID:            apimodels.FlexString(strconv.Itoa(assessment.JobID)),
		CandidateInfo:    data.CandidateInfo,
		Responses:        data.Responses,
		CompletionStatus: responseapimodels.CompletionStatusCompleted,
	})
	if err != nil {
		return view, nil, err
	}
	i.notify(doc, view)
	return view, nil, nil
}

func (i impl) notify(doc builder.Document, view responseapimodels.ResponseView) {
	if i.mailer == nil || i.recruiterEmail == "" || !i.mailer.Configured() {
		return
	}
	title := doc.Title
	if title == "" {
		title = view.AssessmentID
	}
	subject := fmt.Sprintf("новый ответ на тест %q", title)
	lines := []string{
		fmt.Sprintf("Кандидат: %s <%s>", view.CandidateInfo.Name, view.CandidateInfo.Email),
		fmt.Sprintf("Вакансия: %s", view.JobID),
		fmt.Sprintf("Отправлено: %s", view.SubmittedAt.Format("02.01.2006 15:04")),
	}
	for _, item := range doc.Flatten() {
		if value, ok := view.Responses[item.ID]; ok {
			lines = append(lines, fmt.Sprintf("%s: %v", item.Label, value))
		}
	}
	message := strings.Join(lines, "\r\n")
	go func() {
		err := i.mailer.SendEMail("TalentFlow", i.recruiterEmail, message, subject)
		if err != nil {
			i.getLogger(view.AssessmentID).WithError(err).Warn("ошибка отправки уведомления рекрутеру")
		}
	}()
}

func (i impl) List(assessmentID string) ([]responseapimodels.ResponseView, error) {
	list, err := i.store.ListByAssessment(assessmentID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка ответов")
	}
	result := make([]responseapimodels.ResponseView, 0, len(list))
	for _, rec := range list {
		result = append(result, responseapimodels.ResponseConvert(rec))
	}
	return result, nil
}

// Export ответы в xlsx, колонки вопросов в порядке документа теста
func (i impl) Export(assessmentID string) (*bytes.Buffer, error) {
	list, err := i.List(assessmentID)
	if err != nil {
		return nil, err
	}
	columns := []xlsexport.Column{}
	assessment, err := i.assessmentStore.GetByID(assessmentID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения теста")
	}
	if assessment != nil && !assessment.Data.IsEmpty() {
		doc, err := builder.Parse(assessment.Data)
		if err != nil {
			i.getLogger(assessmentID).WithError(err).Warn("документ теста не разобран, колонки по id вопросов")
		}
		for _, item := range doc.Flatten() {
			columns = append(columns, xlsexport.Column{ID: item.ID, Title: item.Label})
		}
	}
	buf, err := i.exporter.ExportResponseList(list, columns)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка выгрузки ответов")
	}
	return buf, nil
}

package gpthandler

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"talentflow-backend/config"
	"talentflow-backend/db"
	"talentflow-backend/lib/assessment/builder"
	ailogstore "talentflow-backend/lib/gpt/store"
	yagptclient "talentflow-backend/lib/gpt/yagpt-client"
	"talentflow-backend/lib/utils/lock"
	"talentflow-backend/models"
	assessmentapimodels "talentflow-backend/models/api/assessment"
	dbmodels "talentflow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	GenerateAssessment(ctx context.Context, req assessmentapimodels.GenerateRequest) (builder.Document, error)
}

const AssessmentSysPromt = `Ты помогаешь рекрутеру составить тест для кандидатов.
Ответ верни только в формате JSON без пояснений:
{"jobId":"<id>","title":"<название>","sections":[{"id":"<id>","title":"<название раздела>","questions":[
{"id":"<id>","type":"short|long|single|multi|numeric","label":"<вопрос>","required":true,
"maxLength":<для long>,"options":["<для single и multi>"],"min":<для numeric>,"max":<для numeric>}]}]}`

const resourceName = "gpt_assessment"

var Instance Provider

// NewHandler без IAM токена генерация недоступна
func NewHandler() {
	var client yagptclient.Provider
	if config.Conf.YandexGPT.IAMToken != "" {
		client = yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID)
	}
	Instance = NewInstance(db.DB, client, nil)
}

func NewInstance(DB *gorm.DB, client yagptclient.Provider, ids builder.IDGenerator) Provider {
	if ids == nil {
		ids = builder.DefaultIDGenerator()
	}
	result := impl{
		client: client,
		ids:    ids,
	}
	if DB != nil {
		result.logStore = ailogstore.NewInstance(DB)
	}
	return result
}

type impl struct {
	client   yagptclient.Provider
	logStore ailogstore.Provider
	ids      builder.IDGenerator
}

func (i impl) getLogger(jobID int) *log.Entry {
	return log.
		WithField("handler", "gpt").
		WithField("job_id", jobID)
}

func (i impl) GenerateAssessment(ctx context.Context, req assessmentapimodels.GenerateRequest) (doc builder.Document, err error) {
	if i.client == nil {
		return builder.Document{}, errors.Wrap(models.ErrNotConfigured, "YandexGPT не настроен")
	}
	jobID := int(req.JobID)
	logger := i.getLogger(jobID)
	if !lock.Resource.Acquire(ctx, resourceName) {
		return builder.Document{}, errors.Wrap(models.ErrGeneration, "генератор недоступен")
	}
	defer lock.Resource.Release(resourceName)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Assessment"
	}
	text := fmt.Sprintf("Вакансия: %v\nНазвание теста: %v\nЗапрос: %v", jobID, title, req.Prompt)
	answer, err := i.client.GenerateByPromtAndText(ctx, AssessmentSysPromt, text)
	i.saveLog(jobID, text, answer, err)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации теста через YandexGPT")
		return builder.Document{}, errors.Wrap(models.ErrGeneration, err.Error())
	}
	doc, err = ParseAnswer(answer)
	if err != nil {
		logger.WithError(err).Error("ошибка разбора ответа YandexGPT")
		return builder.Document{}, errors.Wrap(models.ErrGeneration, err.Error())
	}
	return builder.Normalize(doc, strconv.Itoa(jobID), title, i.ids), nil
}

func (i impl) saveLog(jobID int, text, answer string, genErr error) {
	if i.logStore == nil {
		return
	}
	rec := dbmodels.AiLog{
		JobID:      jobID,
		SysPromt:   AssessmentSysPromt,
		UserPromt:  text,
		Answer:     answer,
		ReqestType: dbmodels.AiAssessmentType,
		AiName:     dbmodels.AiYaGptType,
	}
	if genErr != nil {
		rec.Error = genErr.Error()
	}
	if _, err := i.logStore.Save(rec); err != nil {
		i.getLogger(jobID).WithError(err).Warn("ошибка сохранения журнала запроса к ИИ")
	}
}

var fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// ParseAnswer разбор ответа модели, markdown-обрамление ```json ... ``` снимается
func ParseAnswer(answer string) (builder.Document, error) {
	answer = strings.TrimSpace(answer)
	if match := fenceRe.FindStringSubmatch(answer); match != nil {
		answer = match[1]
	}
	if answer == "" {
		return builder.Document{}, errors.New("пустой ответ модели")
	}
	return builder.Parse([]byte(answer))
}

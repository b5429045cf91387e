package assessmenthandler

import (
	"context"
	"fmt"
	"strconv"
	"talentflow-backend/config"
	"talentflow-backend/db"
	"talentflow-backend/lib/assessment/builder"
	assessmentstore "talentflow-backend/lib/assessment/store"
	pdfexport "talentflow-backend/lib/export/pdf"
	filestorage "talentflow-backend/lib/file-storage"
	"talentflow-backend/models"
	apimodels "talentflow-backend/models/api"
	assessmentapimodels "talentflow-backend/models/api/assessment"
	dbmodels "talentflow-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(data assessmentapimodels.AssessmentData) (id string, err error)
	ListByJob(jobID int) ([]assessmentapimodels.AssessmentView, error)
	Get(id string) (assessmentapimodels.AssessmentView, error)
	GetDocument(id string) (builder.Document, error)
	Update(id string, data assessmentapimodels.AssessmentUpdate) (assessmentapimodels.AssessmentView, error)
	Delete(id string) error
	TogglePublish(id string) (assessmentapimodels.PublishView, error)
	PublicGet(id string) (assessmentapimodels.AssessmentView, error)
	ExportPDF(id string) (body []byte, fileName string, err error)
	ArchivePDF(ctx context.Context, id string) (assessmentapimodels.ArchiveView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, config.Conf.App.PublishedPathPrefix, filestorage.Instance)
}

func NewInstance(DB *gorm.DB, publishedPathPrefix string, storage filestorage.Provider) Provider {
	return impl{
		store:               assessmentstore.NewInstance(DB),
		storage:             storage,
		publishedPathPrefix: publishedPathPrefix,
	}
}

type impl struct {
	store               assessmentstore.Provider
	storage             filestorage.Provider
	publishedPathPrefix string
}

func (i impl) getLogger(assessmentID string) *log.Entry {
	logger := log.WithField("handler", "assessment")
	if assessmentID != "" {
		logger = logger.WithField("assessment_id", assessmentID)
	}
	return logger
}

func (i impl) Create(data assessmentapimodels.AssessmentData) (id string, err error) {
	rec := dbmodels.Assessment{
		JobID: int(data.JobID),
		Data:  dbmodels.AssessmentData(data.Data),
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания теста")
	}
	i.getLogger(id).WithField("job_id", rec.JobID).Info("создан тест")
	return id, nil
}

func (i impl) ListByJob(jobID int) ([]assessmentapimodels.AssessmentView, error) {
	list, err := i.store.ListByJob(jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка тестов")
	}
	result := make([]assessmentapimodels.AssessmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, assessmentapimodels.AssessmentConvert(rec))
	}
	return result, nil
}

func (i impl) getRec(id string) (*dbmodels.Assessment, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения теста")
	}
	if rec == nil {
		return nil, models.NotFound("тест не найден")
	}
	return rec, nil
}

func (i impl) Get(id string) (assessmentapimodels.AssessmentView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return assessmentapimodels.AssessmentView{}, err
	}
	return assessmentapimodels.AssessmentConvert(*rec), nil
}

// GetDocument документ теста в структурированном виде
func (i impl) GetDocument(id string) (builder.Document, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return builder.Document{}, err
	}
	return parseDocument(*rec)
}

func parseDocument(rec dbmodels.Assessment) (builder.Document, error) {
	if rec.Data.IsEmpty() {
		return builder.Document{JobID: apimodels.FlexString(strconv.Itoa(rec.JobID)), Sections: []builder.Section{}}, nil
	}
	doc, err := builder.Parse(rec.Data)
	if err != nil {
		return builder.Document{}, err
	}
	if doc.JobID == "" {
		doc.JobID = apimodels.FlexString(strconv.Itoa(rec.JobID))
	}
	return doc, nil
}

func (i impl) Update(id string, data assessmentapimodels.AssessmentUpdate) (assessmentapimodels.AssessmentView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return assessmentapimodels.AssessmentView{}, err
	}
	rec.Data = dbmodels.AssessmentData(data.Data)
	err = i.store.Update(id, map[string]interface{}{"data": rec.Data})
	if err != nil {
		return assessmentapimodels.AssessmentView{}, errors.Wrap(err, "ошибка изменения теста")
	}
	return assessmentapimodels.AssessmentConvert(*rec), nil
}

func (i impl) Delete(id string) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return errors.Wrap(err, "ошибка удаления теста")
	}
	i.getLogger(id).Info("тест удален")
	return nil
}

// TogglePublish переключает публикацию, ссылка возвращается только при публикации
func (i impl) TogglePublish(id string) (assessmentapimodels.PublishView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return assessmentapimodels.PublishView{}, err
	}
	rec.Published = !rec.Published
	err = i.store.Update(id, map[string]interface{}{"published": rec.Published})
	if err != nil {
		return assessmentapimodels.PublishView{}, errors.Wrap(err, "ошибка изменения публикации теста")
	}
	result := assessmentapimodels.PublishView{
		AssessmentView: assessmentapimodels.AssessmentConvert(*rec),
	}
	if rec.Published {
		link := i.publishedPathPrefix + id
		result.Link = &link
	}
	i.getLogger(id).WithField("published", rec.Published).Info("изменена публикация теста")
	return result, nil
}

// PublicGet тест для заполнения кандидатом, неопубликованный не отдается
func (i impl) PublicGet(id string) (assessmentapimodels.AssessmentView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return assessmentapimodels.AssessmentView{}, err
	}
	if !rec.Published {
		return assessmentapimodels.AssessmentView{}, models.NotFound("тест не опубликован")
	}
	return assessmentapimodels.AssessmentConvert(*rec), nil
}

func (i impl) ExportPDF(id string) (body []byte, fileName string, err error) {
	doc, err := i.GetDocument(id)
	if err != nil {
		return nil, "", err
	}
	body, err = pdfexport.GenerateAssessment(doc)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка формирования pdf теста")
	}
	return body, fmt.Sprintf("assessment_%s.pdf", id), nil
}

// ArchivePDF сохраняет pdf теста в S3, ключ assessments/<id>/<время>.pdf
func (i impl) ArchivePDF(ctx context.Context, id string) (assessmentapimodels.ArchiveView, error) {
	if i.storage == nil {
		return assessmentapimodels.ArchiveView{}, errors.Wrap(models.ErrNotConfigured, "файловое хранилище не настроено")
	}
	body, _, err := i.ExportPDF(id)
	if err != nil {
		return assessmentapimodels.ArchiveView{}, err
	}
	key := fmt.Sprintf("assessments/%s/%s.pdf", id, time.Now().UTC().Format("20060102T150405"))
	if err = i.storage.UploadFile(ctx, key, body, "application/pdf"); err != nil {
		return assessmentapimodels.ArchiveView{}, errors.Wrap(err, "ошибка архивирования теста")
	}
	return assessmentapimodels.ArchiveView{Key: key}, nil
}

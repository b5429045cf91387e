package candidatehandler

import (
	"strings"
	"talentflow-backend/db"
	candidatestore "talentflow-backend/lib/candidate/store"
	"talentflow-backend/lib/pipeline"
	"talentflow-backend/lib/query"
	connectionhub "talentflow-backend/lib/ws/hub/connection-hub"
	"talentflow-backend/models"
	candidateapimodels "talentflow-backend/models/api/candidate"
	dbmodels "talentflow-backend/models/db"
	wsmodels "talentflow-backend/models/ws"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	List(req query.Request, jobID int) (query.Page[candidateapimodels.CandidateView], error)
	ListAll(jobID int) ([]candidateapimodels.CandidateView, error)
	ListByJob(jobID int) ([]candidateapimodels.CandidateView, error)
	Board(jobID int) (candidateapimodels.BoardView, error)
	Create(data candidateapimodels.CandidateData) (candidateapimodels.CandidateView, error)
	PatchStage(id string, data candidateapimodels.StagePatch) (candidateapimodels.CandidateView, error)
	Delete(id string) error
}

// Notifier рассылка событий доски подписчикам вакансии
type Notifier interface {
	SendMessage(msg wsmodels.ServerMessage)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, connectionhub.Instance)
}

func NewInstance(DB *gorm.DB, notifier Notifier) Provider {
	return impl{
		store:    candidatestore.NewInstance(DB),
		notifier: notifier,
	}
}

// DefaultLimit размер страницы списка кандидатов по умолчанию
const DefaultLimit = 25

// CandidateAccessor поля кандидата для фильтрации и сортировки, фильтр status = этап
var CandidateAccessor = query.Accessor[candidateapimodels.CandidateView]{
	Status:       func(item candidateapimodels.CandidateView) string { return string(item.Stage) },
	SearchFields: func(item candidateapimodels.CandidateView) []string { return []string{item.Name, item.Email} },
	SortKeys: map[string]func(item candidateapimodels.CandidateView) any{
		"name":  func(item candidateapimodels.CandidateView) any { return item.Name },
		"email": func(item candidateapimodels.CandidateView) any { return item.Email },
		"stage": func(item candidateapimodels.CandidateView) any { return string(item.Stage) },
		"jobId": func(item candidateapimodels.CandidateView) any { return item.JobID },
	},
}

type impl struct {
	store    candidatestore.Provider
	notifier Notifier
}

func (i impl) getLogger(candidateID string) *log.Entry {
	logger := log.WithField("handler", "candidate")
	if candidateID != "" {
		logger = logger.WithField("candidate_id", candidateID)
	}
	return logger
}

// List постраничный список, jobID = 0 без фильтра по вакансии
func (i impl) List(req query.Request, jobID int) (query.Page[candidateapimodels.CandidateView], error) {
	views, err := i.ListAll(jobID)
	if err != nil {
		return query.Page[candidateapimodels.CandidateView]{}, err
	}
	return query.Run(views, req, CandidateAccessor), nil
}

func (i impl) ListAll(jobID int) ([]candidateapimodels.CandidateView, error) {
	var list []dbmodels.Candidate
	var err error
	if jobID != 0 {
		list, err = i.store.ListByJob(jobID)
	} else {
		list, err = i.store.List()
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка кандидатов")
	}
	return convertList(list), nil
}

func (i impl) ListByJob(jobID int) ([]candidateapimodels.CandidateView, error) {
	list, err := i.store.ListByJob(jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидатов вакансии")
	}
	return convertList(list), nil
}

func (i impl) Board(jobID int) (candidateapimodels.BoardView, error) {
	list, err := i.ListByJob(jobID)
	if err != nil {
		return candidateapimodels.BoardView{}, err
	}
	return candidateapimodels.BoardView{
		JobID:   jobID,
		Columns: pipeline.Partition(list),
	}, nil
}

func (i impl) Create(data candidateapimodels.CandidateData) (candidateapimodels.CandidateView, error) {
	rec, err := i.store.Create(dbmodels.Candidate{
		Name:  strings.TrimSpace(data.Name),
		Email: strings.TrimSpace(data.Email),
		JobID: data.JobID,
		Stage: data.Stage,
	})
	if err != nil {
		return candidateapimodels.CandidateView{}, errors.Wrap(err, "ошибка создания кандидата")
	}
	i.getLogger(rec.ID).WithField("job_id", rec.JobID).Info("создан кандидат")
	i.notify(rec.JobID, wsmodels.CodeCandidateCreated, rec.ID, rec.Stage)
	return candidateapimodels.CandidateConvert(*rec), nil
}

func (i impl) PatchStage(id string, data candidateapimodels.StagePatch) (candidateapimodels.CandidateView, error) {
	logger := i.getLogger(id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return candidateapimodels.CandidateView{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return candidateapimodels.CandidateView{}, models.NotFound("кандидат не найден")
	}
	if data.Stage == nil || *data.Stage == "" {
		return candidateapimodels.CandidateConvert(*rec), nil
	}
	if *data.Stage != rec.Stage {
		if err = i.store.UpdateStage(id, *data.Stage); err != nil {
			return candidateapimodels.CandidateView{}, errors.Wrap(err, "ошибка изменения этапа кандидата")
		}
		logger.
			WithField("from", rec.Stage).
			WithField("to", *data.Stage).
			Info("изменен этап кандидата")
		rec.Stage = *data.Stage
		i.notify(rec.JobID, wsmodels.CodeCandidateStageChanged, rec.ID, rec.Stage)
	}
	return candidateapimodels.CandidateConvert(*rec), nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return models.NotFound("кандидат не найден")
	}
	if err = i.store.Delete(id); err != nil {
		return errors.Wrap(err, "ошибка удаления кандидата")
	}
	i.getLogger(id).Info("удален кандидат")
	i.notify(rec.JobID, wsmodels.CodeCandidateDeleted, rec.ID, "")
	return nil
}

func (i impl) notify(jobID int, code, candidateID string, stage models.CandidateStage) {
	if i.notifier == nil {
		return
	}
	i.notifier.SendMessage(wsmodels.ServerMessage{
		JobID:       jobID,
		Time:        time.Now().Format(time.RFC3339),
		Code:        code,
		CandidateID: candidateID,
		Stage:       string(stage),
	})
}

func convertList(list []dbmodels.Candidate) []candidateapimodels.CandidateView {
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.CandidateConvert(rec))
	}
	return result
}

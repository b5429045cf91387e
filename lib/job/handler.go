package jobhandler

import (
	"context"
	"strings"
	"talentflow-backend/db"
	jobstore "talentflow-backend/lib/job/store"
	"talentflow-backend/lib/query"
	"talentflow-backend/lib/utils/helpers"
	"talentflow-backend/lib/utils/lock"
	"talentflow-backend/models"
	jobapimodels "talentflow-backend/models/api/job"
	dbmodels "talentflow-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	List(req query.Request) (query.Page[jobapimodels.JobView], error)
	Count() (int64, error)
	GetByID(id int) (jobapimodels.JobView, error)
	Create(ctx context.Context, data jobapimodels.JobData) (item jobapimodels.JobView, hMsg string, err error)
	Update(ctx context.Context, id int, data jobapimodels.JobUpdate) (item jobapimodels.JobView, hMsg string, err error)
	Reorder(items []jobapimodels.ReorderItem) error
	ToggleStatus(id int) (jobapimodels.JobView, error)
	Delete(id int) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		db:    DB,
		store: jobstore.NewInstance(DB),
	}
}

// блокировка проверки slug и назначения порядка при создании/изменении вакансий
const writeLockKey = "job_write"

const writeLockWait = 5 * time.Second

// JobAccessor поля вакансии для фильтрации и сортировки списка
var JobAccessor = query.Accessor[jobapimodels.JobView]{
	Status:       func(item jobapimodels.JobView) string { return string(item.Status) },
	SearchFields: func(item jobapimodels.JobView) []string { return []string{item.Title, item.Slug} },
	Tags:         func(item jobapimodels.JobView) []string { return item.Tags },
	SortKeys: map[string]func(item jobapimodels.JobView) any{
		"id":        func(item jobapimodels.JobView) any { return item.ID },
		"title":     func(item jobapimodels.JobView) any { return item.Title },
		"slug":      func(item jobapimodels.JobView) any { return item.Slug },
		"status":    func(item jobapimodels.JobView) any { return string(item.Status) },
		"order":     func(item jobapimodels.JobView) any { return item.Order },
		"createdAt": func(item jobapimodels.JobView) any { return item.CreatedAt },
		"updatedAt": func(item jobapimodels.JobView) any { return item.UpdatedAt },
	},
	DefaultSort: "order",
}

type impl struct {
	db    *gorm.DB
	store jobstore.Provider
}

func (i impl) getLogger(jobID int) *log.Entry {
	logger := log.WithField("handler", "job")
	if jobID != 0 {
		logger = logger.WithField("job_id", jobID)
	}
	return logger
}

func (i impl) List(req query.Request) (query.Page[jobapimodels.JobView], error) {
	list, err := i.store.List()
	if err != nil {
		return query.Page[jobapimodels.JobView]{}, errors.Wrap(err, "ошибка получения списка вакансий")
	}
	views := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		views = append(views, jobapimodels.JobConvert(rec))
	}
	return query.Run(views, req, JobAccessor), nil
}

func (i impl) Count() (int64, error) {
	count, err := i.store.Count()
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества вакансий")
	}
	return count, nil
}

func (i impl) GetByID(id int) (jobapimodels.JobView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return jobapimodels.JobView{}, errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return jobapimodels.JobView{}, models.NotFound("вакансия не найдена")
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) Create(ctx context.Context, data jobapimodels.JobData) (item jobapimodels.JobView, hMsg string, err error) {
	logger := i.getLogger(0)
	title := strings.TrimSpace(data.Title)
	slug := strings.TrimSpace(data.Slug)
	if slug == "" {
		slug = helpers.Slugify(title)
	}
	if slug == "" {
		return item, "не удалось сформировать slug из названия вакансии", nil
	}
	status := data.Status
	if status == "" {
		status = models.JobStatusActive
	}
	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}
	var created *dbmodels.Job
	ok, err := lock.WithDelay(ctx, writeLockKey, writeLockWait, func() error {
		existing, err := i.store.GetBySlug(slug)
		if err != nil {
			return errors.Wrap(err, "ошибка проверки уникальности slug")
		}
		if existing != nil {
			hMsg = "slug вакансии должен быть уникальным"
			return nil
		}
		maxOrder, err := i.store.MaxOrder()
		if err != nil {
			return errors.Wrap(err, "ошибка получения порядка вакансий")
		}
		now := time.Now()
		created, err = i.store.Create(dbmodels.Job{
			Title:     title,
			Slug:      slug,
			Status:    status,
			Tags:      tags,
			Order:     maxOrder + 1,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка создания вакансии")
		}
		return nil
	})
	if err != nil {
		return item, "", err
	}
	if !ok {
		return item, "", errors.New("превышено время ожидания блокировки вакансий")
	}
	if hMsg != "" {
		return item, hMsg, nil
	}
	logger.
		WithField("job_id", created.ID).
		WithField("slug", created.Slug).
		Info("создана вакансия")
	return jobapimodels.JobConvert(*created), "", nil
}

func (i impl) Update(ctx context.Context, id int, data jobapimodels.JobUpdate) (item jobapimodels.JobView, hMsg string, err error) {
	logger := i.getLogger(id)
	ok, err := lock.WithDelay(ctx, writeLockKey, writeLockWait, func() error {
		rec, err := i.store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения вакансии")
		}
		if rec == nil {
			return models.NotFound("вакансия не найдена")
		}
		updMap := map[string]interface{}{
			"updated_at": time.Now(),
		}
		if data.Title != nil {
			updMap["title"] = strings.TrimSpace(*data.Title)
		}
		if data.Slug != nil {
			slug := strings.TrimSpace(*data.Slug)
			if slug != rec.Slug {
				existing, err := i.store.GetBySlug(slug)
				if err != nil {
					return errors.Wrap(err, "ошибка проверки уникальности slug")
				}
				if existing != nil {
					hMsg = "slug вакансии должен быть уникальным"
					return nil
				}
			}
			updMap["slug"] = slug
		}
		if data.Status != nil {
			updMap["status"] = *data.Status
		}
		if data.Tags != nil {
			tags := dbmodels.JobTags(*data.Tags)
			if tags == nil {
				tags = dbmodels.JobTags{}
			}
			updMap["tags"] = tags
		}
		if data.Order != nil {
			updMap["job_order"] = *data.Order
		}
		return i.store.Update(id, updMap)
	})
	if err != nil {
		return item, "", err
	}
	if !ok {
		return item, "", errors.New("превышено время ожидания блокировки вакансий")
	}
	if hMsg != "" {
		return item, hMsg, nil
	}
	item, err = i.GetByID(id)
	if err != nil {
		return item, "", err
	}
	logger.Info("обновлена вакансия")
	return item, "", nil
}

func (i impl) Reorder(items []jobapimodels.ReorderItem) error {
	logger := i.getLogger(0)
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := jobstore.NewInstance(tx)
		now := time.Now()
		for _, item := range items {
			exists, err := store.Exists(item.ID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения вакансии")
			}
			if !exists {
				return models.NotFound("вакансия не найдена")
			}
			updMap := map[string]interface{}{
				"job_order":  item.Order,
				"updated_at": now,
			}
			if err = store.Update(item.ID, updMap); err != nil {
				return errors.Wrap(err, "ошибка изменения порядка вакансии")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.WithField("count", len(items)).Info("изменен порядок вакансий")
	return nil
}

func (i impl) ToggleStatus(id int) (jobapimodels.JobView, error) {
	var status models.JobStatus
	ok, err := lock.WithDelay(context.Background(), writeLockKey, writeLockWait, func() error {
		rec, err := i.store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения вакансии")
		}
		if rec == nil {
			return models.NotFound("вакансия не найдена")
		}
		status = rec.Status.Toggle()
		updMap := map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}
		return errors.Wrap(i.store.Update(id, updMap), "ошибка изменения статуса вакансии")
	})
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if !ok {
		return jobapimodels.JobView{}, errors.New("превышено время ожидания блокировки вакансий")
	}
	i.getLogger(id).WithField("status", status).Info("изменен статус вакансии")
	return i.GetByID(id)
}

func (i impl) Delete(id int) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return models.NotFound("вакансия не найдена")
	}
	if err = i.store.Delete(id); err != nil {
		return errors.Wrap(err, "ошибка удаления вакансии")
	}
	i.getLogger(id).Info("удалена вакансия")
	return nil
}

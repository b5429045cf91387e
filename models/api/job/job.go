package jobapimodels

import (
	"strings"
	"talentflow-backend/models"
	dbmodels "talentflow-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type JobData struct {
	Title  string           `json:"title"`
	Slug   string           `json:"slug"`
	Status models.JobStatus `json:"status"`
	Tags   []string         `json:"tags"`
}

func (j JobData) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return errors.New("не указано название вакансии")
	}
	if j.Status != "" {
		if err := j.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// JobUpdate частичное обновление, не переданные поля не меняются
type JobUpdate struct {
	Title  *string           `json:"title"`
	Slug   *string           `json:"slug"`
	Status *models.JobStatus `json:"status"`
	Tags   *[]string         `json:"tags"`
	Order  *int              `json:"order"`
}

func (j JobUpdate) Validate() error {
	if j.Title != nil && strings.TrimSpace(*j.Title) == "" {
		return errors.New("название вакансии не может быть пустым")
	}
	if j.Slug != nil && strings.TrimSpace(*j.Slug) == "" {
		return errors.New("slug вакансии не может быть пустым")
	}
	if j.Status != nil {
		if err := j.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ReorderItem struct {
	ID    int `json:"id"`
	Order int `json:"order"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items"`
}

func (r ReorderRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("не указан порядок вакансий")
	}
	seen := make(map[int]bool, len(r.Items))
	for _, item := range r.Items {
		if item.ID <= 0 {
			return errors.New("некорректный идентификатор вакансии")
		}
		if seen[item.ID] {
			return errors.Errorf("вакансия %v указана несколько раз", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

type JobView struct {
	ID        int              `json:"id"`
	Title     string           `json:"title"`
	Slug      string           `json:"slug"`
	Status    models.JobStatus `json:"status"`
	Tags      []string         `json:"tags"`
	Order     int              `json:"order"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func JobConvert(rec dbmodels.Job) JobView {
	tags := []string(rec.Tags)
	if tags == nil {
		tags = []string{}
	}
	return JobView{
		ID:        rec.ID,
		Title:     rec.Title,
		Slug:      rec.Slug,
		Status:    rec.Status,
		Tags:      tags,
		Order:     rec.Order,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

type CountView struct {
	Count int64 `json:"count"`
}

type MessageView struct {
	Message string `json:"message"`
}

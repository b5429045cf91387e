package db

import (
	"fmt"
	"talentflow-backend/lib/utils/helpers"
	"talentflow-backend/models"
	dbmodels "talentflow-backend/models/db"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var seedTags = []string{"react", "typescript", "design", "backend", "frontend", "fullstack"}

// Seed заполняет хранилище демо-данными, только если вакансий еще нет
func Seed(DB *gorm.DB, jobCount, candidateCount int, randSeed int64) (seeded bool, err error) {
	logger := log.WithField("jobs", jobCount).WithField("candidates", candidateCount)
	var existing int64
	if err = DB.Model(&dbmodels.Job{}).Count(&existing).Error; err != nil {
		return false, errors.Wrap(err, "ошибка получения количества вакансий")
	}
	if existing > 0 {
		logger.WithField("existing", existing).Info("Хранилище уже заполнено, пропускаем")
		return false, nil
	}
	faker := gofakeit.New(randSeed)
	err = DB.Transaction(func(tx *gorm.DB) error {
		jobs := generateJobs(faker, jobCount)
		if len(jobs) == 0 {
			return nil
		}
		if err := tx.Create(&jobs).Error; err != nil {
			return errors.Wrap(err, "ошибка добавления вакансий")
		}
		candidates := generateCandidates(faker, jobs, candidateCount)
		if len(candidates) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&candidates, 200).Error; err != nil {
			return errors.Wrap(err, "ошибка добавления кандидатов")
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	logger.Info("Хранилище заполнено демо-данными")
	return true, nil
}

func generateJobs(faker *gofakeit.Faker, count int) []dbmodels.Job {
	jobs := make([]dbmodels.Job, 0, count)
	usedSlugs := map[string]bool{}
	now := time.Now()
	for k := 0; k < count; k++ {
		title := faker.JobTitle()
		base := helpers.Slugify(title)
		slug := base
		for n := 2; usedSlugs[slug]; n++ {
			slug = fmt.Sprintf("%v-%v", base, n)
		}
		usedSlugs[slug] = true
		shuffled := append([]string{}, seedTags...)
		faker.ShuffleStrings(shuffled)
		tags := shuffled[:faker.Number(1, 3)]
		jobs = append(jobs, dbmodels.Job{
			Title:     title,
			Slug:      slug,
			Status:    models.JobStatus(faker.RandomString([]string{string(models.JobStatusActive), string(models.JobStatusArchived)})),
			Tags:      tags,
			Order:     k + 1,
			CreatedAt: faker.DateRange(now.AddDate(-1, 0, 0), now),
			UpdatedAt: now,
		})
	}
	return jobs
}

func generateCandidates(faker *gofakeit.Faker, jobs []dbmodels.Job, count int) []dbmodels.Candidate {
	stages := make([]string, 0, len(models.CandidateStages))
	for _, stage := range models.CandidateStages {
		stages = append(stages, string(stage))
	}
	candidates := make([]dbmodels.Candidate, 0, count)
	for k := 0; k < count; k++ {
		job := jobs[faker.Number(0, len(jobs)-1)]
		candidates = append(candidates, dbmodels.Candidate{
			Name:  faker.Name(),
			Email: faker.Email(),
			JobID: job.ID,
			Stage: models.CandidateStage(faker.RandomString(stages)),
		})
	}
	return candidates
}

package db

import (
	dbmodels "talentflow-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type migrationStep struct {
	version int
	name    string
	apply   func(tx *gorm.DB) error
}

// ревизии схемы только добавляют коллекции, существующие не изменяются
var migrationSteps = []migrationStep{
	{
		version: 1,
		name:    "jobs, candidates, assessments",
		apply: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&dbmodels.Job{}); err != nil {
				return errors.Wrap(err, "ошибка создания структуры Job")
			}
			if err := tx.AutoMigrate(&dbmodels.Candidate{}); err != nil {
				return errors.Wrap(err, "ошибка создания структуры Candidate")
			}
			if err := tx.AutoMigrate(&dbmodels.Assessment{}); err != nil {
				return errors.Wrap(err, "ошибка создания структуры Assessment")
			}
			return nil
		},
	},
	{
		version: 2,
		name:    "responses",
		apply: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&dbmodels.CandidateResponse{}); err != nil {
				return errors.Wrap(err, "ошибка создания структуры CandidateResponse")
			}
			return nil
		},
	},
	{
		version: 3,
		name:    "ai logs",
		apply: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&dbmodels.AiLog{}); err != nil {
				return errors.Wrap(err, "ошибка создания структуры AiLog")
			}
			return nil
		},
	},
}

// LatestSchemaVersion последняя известная ревизия схемы
func LatestSchemaVersion() int {
	return migrationSteps[len(migrationSteps)-1].version
}

func AutoMigrateDB(DB *gorm.DB) error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.SchemaVersion{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SchemaVersion")
	}
	current, err := SchemaVersion(DB)
	if err != nil {
		return err
	}
	for _, step := range migrationSteps {
		if step.version <= current {
			continue
		}
		err = DB.Transaction(func(tx *gorm.DB) error {
			if err := step.apply(tx); err != nil {
				return err
			}
			rec := dbmodels.SchemaVersion{
				Version:   step.version,
				Name:      step.name,
				AppliedAt: time.Now(),
			}
			return tx.Create(&rec).Error
		})
		if err != nil {
			return errors.Wrapf(err, "ошибка применения ревизии схемы %v", step.version)
		}
		log.
			WithField("version", step.version).
			WithField("name", step.name).
			Info("Применена ревизия схемы")
	}
	log.Info("Миграция прошла успешно")
	return nil
}

// SchemaVersion текущая ревизия схемы, 0 если миграции не применялись
func SchemaVersion(DB *gorm.DB) (int, error) {
	type result struct {
		MaxVersion int
	}
	res := result{}
	err := DB.Model(&dbmodels.SchemaVersion{}).
		Select("coalesce(max(version), 0) as max_version").
		Find(&res).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения ревизии схемы")
	}
	return res.MaxVersion, nil
}

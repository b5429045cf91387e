package db

import (
	"fmt"
	"testing"

	"talentflow-backend/models"
	dbmodels "talentflow-backend/models/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := Open(DriverSqlite, dsn, false)
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return conn
}

func TestMigration(t *testing.T) {
	conn := openTestDB(t)

	t.Run(`migrate to latest revision`, func(t *testing.T) {
		require.NoError(t, AutoMigrateDB(conn))
		version, err := SchemaVersion(conn)
		require.NoError(t, err)
		require.Equal(t, 3, version)
		require.Equal(t, LatestSchemaVersion(), version)
		require.True(t, conn.Migrator().HasTable(&dbmodels.CandidateResponse{}))
		require.True(t, conn.Migrator().HasTable(&dbmodels.AiLog{}))
	})

	t.Run(`migrate twice is no-op`, func(t *testing.T) {
		require.NoError(t, AutoMigrateDB(conn))
		var count int64
		require.NoError(t, conn.Model(&dbmodels.SchemaVersion{}).Count(&count).Error)
		require.Equal(t, int64(3), count)
	})
}

func TestSeed(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, AutoMigrateDB(conn))

	t.Run(`seed empty store`, func(t *testing.T) {
		seeded, err := Seed(conn, 25, 300, 42)
		require.NoError(t, err)
		require.True(t, seeded)

		jobs := []dbmodels.Job{}
		require.NoError(t, conn.Find(&jobs).Error)
		require.Len(t, jobs, 25)
		slugs := map[string]bool{}
		for _, job := range jobs {
			require.False(t, slugs[job.Slug], "slug %v duplicated", job.Slug)
			slugs[job.Slug] = true
			require.NoError(t, job.Status.Validate())
			require.GreaterOrEqual(t, len(job.Tags), 1)
			require.LessOrEqual(t, len(job.Tags), 3)
		}

		candidates := []dbmodels.Candidate{}
		require.NoError(t, conn.Find(&candidates).Error)
		require.Len(t, candidates, 300)
		for _, candidate := range candidates {
			require.NotEmpty(t, candidate.ID)
			require.NoError(t, candidate.Stage.Validate())
		}
	})

	t.Run(`seed twice does not duplicate`, func(t *testing.T) {
		seeded, err := Seed(conn, 25, 300, 42)
		require.NoError(t, err)
		require.False(t, seeded)
		var count int64
		require.NoError(t, conn.Model(&dbmodels.Job{}).Count(&count).Error)
		require.Equal(t, int64(25), count)
	})

	t.Run(`seeded stages are known`, func(t *testing.T) {
		var stages []models.CandidateStage
		require.NoError(t, conn.Model(&dbmodels.Candidate{}).Distinct("stage").Pluck("stage", &stages).Error)
		for _, stage := range stages {
			require.NoError(t, stage.Validate())
		}
	})
}

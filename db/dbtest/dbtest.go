package dbtest

import (
	"fmt"
	"testing"

	"talentflow-backend/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New отдельная in-memory sqlite база с примененными миграциями
func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.Open(db.DriverSqlite, dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrateDB(conn))
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return conn
}

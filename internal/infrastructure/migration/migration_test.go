package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aidlink/aidlink/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	gdb := openSQLite(t)
	s := NewGooseStrategy("sqlite3", logger.NewNop())

	require.NoError(t, s.Migrate(gdb))

	version, err := s.GetVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)
	for _, table := range []string{"ngos", "beneficiaries", "donations", "distributions"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	require.NoError(t, s.MigrateDown(gdb, 1))
	assert.False(t, gdb.Migrator().HasTable("distributions"))

	version, err = s.GetVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)
}

func TestNewManager_StrategySelection(t *testing.T) {
	log := logger.NewNop()

	assert.Equal(t, "gorm_automigrate", NewManager("development", "sqlite3", log).Strategy().GetName())
	assert.Equal(t, "goose", NewManager("development", "mysql", log).Strategy().GetName())
	assert.Equal(t, "goose", NewManager("production", "sqlite3", log).Strategy().GetName())
}

func TestAutoMigrateStrategy(t *testing.T) {
	gdb := openSQLite(t)
	require.NoError(t, NewManager("development", "sqlite3", logger.NewNop()).Migrate(gdb))
	assert.True(t, gdb.Migrator().HasTable("beneficiaries"))
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "X-Actor-ID", cfg.Server.ActorHeader)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 500, cfg.Distribution.HistoryMaxRows)
	assert.Equal(t, 30*time.Minute, cfg.Distribution.PlanTTL())
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AIDLINK_DATABASE_DRIVER", "sqlite")
	t.Setenv("AIDLINK_DISTRIBUTION_PLAN_TTL_MINUTES", "5")

	cfg, err := Load("release")
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "sqlite3", cfg.Database.GooseDialect())
	assert.Equal(t, 5*time.Minute, cfg.Distribution.PlanTTL())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

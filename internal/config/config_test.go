package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults_LocalTarget(t *testing.T) {
	cfg := Config{BuildTarget: "local", DBDriver: "auto", PayPeriodAnchor: "2023-01-07"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestResolveDefaults_CloudRequiresDSN(t *testing.T) {
	cfg := Config{BuildTarget: "cloud", DBDriver: "auto", PayPeriodAnchor: "2023-01-07"}
	require.Error(t, cfg.ResolveDefaults())

	cfg.PostgresDSN = "postgres://localhost/workhours"
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaults_RejectsUnknownTargetAndDriver(t *testing.T) {
	cfg := Config{BuildTarget: "staging", PayPeriodAnchor: "2023-01-07"}
	assert.Error(t, cfg.ResolveDefaults())

	cfg = Config{BuildTarget: "local", DBDriver: "oracle", PayPeriodAnchor: "2023-01-07"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestAnchorParsing(t *testing.T) {
	cfg := Config{BuildTarget: "local", DBDriver: "sqlite", PayPeriodAnchor: "2023-01-07"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, time.Date(2023, 1, 7, 0, 0, 0, 0, time.UTC), cfg.Anchor())

	cfg.PayPeriodAnchor = "07/01/2023"
	assert.Error(t, cfg.ResolveDefaults())
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("WORKHOURS_BUILD_TARGET", "local")
	t.Setenv("WORKHOURS_HTTP_PORT", "9191")
	t.Setenv("WORKHOURS_SQLITE_PATH", "/tmp/wh-test.db")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTPPort)
	assert.Equal(t, "/tmp/wh-test.db", cfg.SQLitePath)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboagye/studyflow/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		LogLevel:           "INFO",
		HorizonDays:        7,
		RefreshWorkerCount: 2,
		RefreshQueueSize:   32,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidHorizon(t *testing.T) {
	tests := []struct {
		name    string
		horizon int
	}{
		{name: "zero horizon", horizon: 0},
		{name: "negative horizon", horizon: -3},
		{name: "horizon too long", horizon: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.HorizonDays = tt.horizon

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "HORIZON_DAYS")
		})
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "VERBOSE"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_LowercaseLogLevelAccepted(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "debug"

	assert.NoError(t, cfg.Validate())
}

func TestValidate_InvalidWorkerSettings(t *testing.T) {
	tests := []struct {
		name          string
		workers       int
		queue         int
		expectedError string
	}{
		{name: "zero workers", workers: 0, queue: 32, expectedError: "REFRESH_WORKER_COUNT"},
		{name: "negative workers", workers: -1, queue: 32, expectedError: "REFRESH_WORKER_COUNT"},
		{name: "zero queue", workers: 2, queue: 0, expectedError: "REFRESH_QUEUE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.RefreshWorkerCount = tt.workers
			cfg.RefreshQueueSize = tt.queue

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Addr:               "",
		DBPath:             "",
		LogLevel:           "INVALID",
		HorizonDays:        0,
		RefreshWorkerCount: 0,
		RefreshQueueSize:   0,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "HORIZON_DAYS")
	assert.Contains(t, errStr, "REFRESH_WORKER_COUNT")
	assert.Contains(t, errStr, "REFRESH_QUEUE_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("HORIZON_DAYS", "14")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 14, cfg.HorizonDays)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "HORIZON_DAYS", "REFRESH_WORKER_COUNT", "REFRESH_QUEUE_SIZE"} {
		os.Unsetenv(key)
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:studyflow.db", cfg.DBPath)
	assert.Equal(t, 7, cfg.HorizonDays)
	assert.Equal(t, 2, cfg.RefreshWorkerCount)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("HORIZON_DAYS", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, 7, cfg.HorizonDays)
}

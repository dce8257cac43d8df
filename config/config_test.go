package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("EVENT_BUS", "")
	t.Setenv("CONTRIBUTION_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "kafka", cfg.Events.Bus)
	assert.Equal(t, 10*time.Second, cfg.Ledger.ContributionTimeout)
	assert.Equal(t, "@daily", cfg.Ledger.BudgetSweepSchedule)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CONTRIBUTION_TIMEOUT", "3s")
	t.Setenv("LEDGER_SERVICE_PORT", "9090")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.Ledger.ContributionTimeout)
	assert.Equal(t, 9090, cfg.Server.LedgerPort)
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "not-a-duration")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_TIMEOUT", time.Minute))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		DB:     DBConfig{Driver: "mysql"},
		Events: EventsConfig{Bus: "carrier-pigeon"},
		Server: ServerConfig{LedgerPort: 8080, NotifierPort: 8081, GRPCPort: 50051},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown DB_DRIVER "mysql"`)
	assert.Contains(t, err.Error(), `unknown EVENT_BUS "carrier-pigeon"`)
	assert.Contains(t, err.Error(), "CONTRIBUTION_TIMEOUT must be positive")
}

func TestValidate_MemoryWithoutBus(t *testing.T) {
	cfg := &Config{
		DB:     DBConfig{Driver: "memory"},
		Events: EventsConfig{Bus: "none"},
		Server: ServerConfig{LedgerPort: 1, NotifierPort: 2, GRPCPort: 3},
		Ledger: LedgerConfig{ContributionTimeout: time.Second},
	}

	assert.NoError(t, cfg.Validate())
}

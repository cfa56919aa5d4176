package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturasegura/api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	// La tasa por defecto es 15%.
	assert.Equal(t, "0.15", cfg.Billing.TaxRate.String())
}

func TestLoad_TaxRateDesdeEntorno(t *testing.T) {
	t.Setenv("TAX_RATE", "0.19")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "0.19", cfg.Billing.TaxRate.String())
}

func TestLoad_TaxRateInvalido(t *testing.T) {
	for _, v := range []string{"abc", "-0.1", "1", "1.5"} {
		t.Setenv("TAX_RATE", v)
		_, err := config.Load()
		assert.Error(t, err, "TAX_RATE=%s debe rechazarse", v)
	}
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "app",
		Password: "p@ss:word/1",
		DBName:   "facturas",
		SSLMode:  "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aword%2F1")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	db := config.DBConfig{
		DatabaseURL: "postgres://x:y@remoto:5432/otra",
		Host:        "localhost",
	}
	assert.Equal(t, "postgres://x:y@remoto:5432/otra", db.ConnectionString())
}

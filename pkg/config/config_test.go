package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "remisiones-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.App.Storage)
	assert.Equal(t, "db", cfg.Report.Aggregation)
	assert.Equal(t, "America/Mexico_City", cfg.Report.Timezone)
	assert.Equal(t, 366, cfg.Report.MaxRangeDays)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.JWT.Enabled())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("REPORT_AGGREGATION", "MEMORY")
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("DB_MAX_CONNS", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Report.Aggregation)
	assert.Equal(t, int32(5), cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.JWT.Enabled())

	loc, err := cfg.Report.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_ValoresInvalidos(t *testing.T) {
	cases := map[string][2]string{
		"agregación": {"REPORT_AGGREGATION", "cache"},
		"zona":       {"REPORT_TIMEZONE", "Marte/Olympus"},
		"storage":    {"STORAGE", "sqlite"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "remisiones", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/remisiones?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())
}

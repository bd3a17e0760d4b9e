package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Documents.GuestDocumentsArePublic)
	assert.Equal(t, 20, cfg.Local.RetentionLimit)
	assert.Equal(t, 600, cfg.Local.LogoMaxWidth)
}

func TestPostgresConnectionStrings(t *testing.T) {
	pg := PostgresConfig{
		Host:     "db",
		Port:     5433,
		User:     "u",
		Password: "p",
		DBName:   "docs",
		SSLMode:  "disable",
	}

	assert.Equal(t, "user=u password=p dbname=docs host=db port=5433 sslmode=disable", pg.GetDSN())
	assert.Equal(t, "postgres://u:p@db:5433/docs?sslmode=disable", pg.GetURL())
}

func TestNewConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PAPERSTACK_SERVER_ADDRESS", ":9090")
	t.Setenv("PAPERSTACK_DOCUMENTS_GUEST_DOCUMENTS_ARE_PUBLIC", "false")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.False(t, cfg.Documents.GuestDocumentsArePublic)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.False(t, cfg.Features.UniqueRecipePerAuthor)
	assert.Equal(t, 3, cfg.Features.SubscriptionRecipesLimit)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FOODGRAM_DATABASE_DRIVER", "postgres")
	t.Setenv("FOODGRAM_SERVER_PORT", "9090")
	t.Setenv("FOODGRAM_FEATURES_UNIQUE_RECIPE_PER_AUTHOR", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Features.UniqueRecipePerAuthor)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("FOODGRAM_DATABASE_DRIVER", "oracle")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.App.Environment = "production"
	cfg.Auth.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "long-random-secret"
	assert.NoError(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "foodgram", Password: "pw",
		Name: "foodgram", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=foodgram password=pw dbname=foodgram sslmode=disable",
		d.DSN())
}

package health_test

import (
	"context"
	"testing"

	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
	"github.com/aaravmahajanofficial/catalog-admin/internal/health"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.Database{Host: "localhost", Port: "5432", User: "app", Password: "secret", Name: "catalog", SSLMode: "disable"},
	}
}

func TestChecks(t *testing.T) {
	t.Run("Success - Database Only", func(t *testing.T) {
		// Arrange
		cfg := testConfig()

		// Act
		checks := health.Checks(cfg)

		// Assert
		require.Len(t, checks, 1)
		assert.Equal(t, "database", checks[0].Name)
		assert.False(t, checks[0].SkipOnErr)
	})

	t.Run("Success - Redis When Configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.RedisConnect = config.RedisConnect{Host: "localhost", Port: "6379"}

		checks := health.Checks(cfg)

		require.Len(t, checks, 2)
		assert.Equal(t, "redis", checks[1].Name)
		assert.True(t, checks[1].SkipOnErr)
	})
}

func TestNewHealthHandler(t *testing.T) {
	t.Run("Success - Extra Checks Registered", func(t *testing.T) {
		h, err := health.NewHealthHandler(testConfig(), healthgo.Config{
			Name:  "uploads",
			Check: func(context.Context) error { return nil },
		})

		require.NoError(t, err)
		assert.NotNil(t, h.Handler())
	})

	t.Run("Error - Unnamed Check", func(t *testing.T) {
		_, err := health.NewHealthHandler(testConfig(), healthgo.Config{
			Check: func(context.Context) error { return nil },
		})

		assert.Error(t, err)
	})
}

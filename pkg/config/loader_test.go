package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koltukutsu/listele/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses env into struct", func(t *testing.T) {
		type testConfig struct {
			Host string `env:"TEST_CFG_HOST" envDefault:"localhost"`
			Port int    `env:"TEST_CFG_PORT" envDefault:"8080"`
		}

		t.Setenv("TEST_CFG_HOST", "example.com")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "example.com", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("required variable missing", func(t *testing.T) {
		type testConfig struct {
			Secret string `env:"TEST_CFG_MISSING_SECRET,required"`
		}

		var cfg testConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *struct{}
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

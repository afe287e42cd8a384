package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing api key is fatal", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("GT_MODEL", "")
		t.Setenv("GT_DATA_DIRS", "")
		t.Setenv("GT_MATCH_THRESHOLD", "")
		t.Setenv("GT_DUPLICATES", "")
		t.Setenv("DEBUG", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, cfg.Model)
		assert.Equal(t, []string{"data/world"}, cfg.DataDirs)
		assert.Equal(t, DefaultPlayerID, cfg.PlayerID)
		assert.Equal(t, DefaultStartLocation, cfg.StartLocation)
		assert.Equal(t, 75, cfg.MatchThreshold)
		assert.Equal(t, "skip", cfg.Duplicates)
		assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
		assert.False(t, cfg.Debug)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("GT_MODEL", "gpt-4o-mini")
		t.Setenv("GT_DATA_DIRS", "worlds/a : worlds/b")
		t.Setenv("GT_MATCH_THRESHOLD", "90")
		t.Setenv("GT_DUPLICATES", "reject")
		t.Setenv("DEBUG", "1")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, []string{"worlds/a", "worlds/b"}, cfg.DataDirs)
		assert.Equal(t, 90, cfg.MatchThreshold)
		assert.Equal(t, "reject", cfg.Duplicates)
		assert.True(t, cfg.Debug)
	})

	t.Run("invalid duplicates policy", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("GT_DUPLICATES", "explode")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("non-numeric threshold falls back", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("GT_DUPLICATES", "")
		t.Setenv("GT_MATCH_THRESHOLD", "lots")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 75, cfg.MatchThreshold)
	})
}

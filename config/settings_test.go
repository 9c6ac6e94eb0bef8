package config_test

import (
	"testing"

	"github.com/fwojciec/lintview/config"
	"github.com/stretchr/testify/assert"
)

func TestSettings(t *testing.T) {
	t.Parallel()

	t.Run("defaults from config", func(t *testing.T) {
		t.Parallel()
		s := config.NewSettings(config.Default())
		assert.True(t, s.Bool(config.KeyEdulintEnabled))
		assert.True(t, s.Bool(config.KeyTextcheckEnabled))
		assert.False(t, s.Bool(config.KeyGeminiEnabled))
		assert.Equal(t, config.DefaultScheme, s.String(config.KeyEditorScheme))
		assert.False(t, s.Bool(config.KeyUsePylint), "edulint enabled turns pylint off")
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		s := config.NewSettings(nil)
		assert.True(t, s.Bool(config.KeyEdulintEnabled))
	})

	t.Run("edulint disabled keeps pylint", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		off := false
		cfg.Analyzers.Edulint.Enabled = &off
		s := config.NewSettings(cfg)
		assert.False(t, s.Bool(config.KeyEdulintEnabled))
		assert.True(t, s.Bool(config.KeyUsePylint))

		s.SetBool(config.KeyEdulintEnabled, true)
		assert.True(t, s.Bool(config.KeyEdulintEnabled))
		assert.False(t, s.Bool(config.KeyUsePylint))
	})

	t.Run("options override sections", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.Options = map[string]string{config.KeyGeminiEnabled: "true", "x.y": "z"}
		s := config.NewSettings(cfg)
		assert.True(t, s.Bool(config.KeyGeminiEnabled))
		assert.Equal(t, "z", s.String("x.y"))
	})

	t.Run("set default and unknown keys", func(t *testing.T) {
		t.Parallel()
		s := config.NewSettings(nil)
		assert.Equal(t, "", s.String("missing"))
		assert.False(t, s.Bool("missing"))
		s.SetDefault("missing", "yes")
		assert.Equal(t, "yes", s.String("missing"))
		assert.False(t, s.Bool("missing"), "unparsable reads false")
		s.SetBool("missing", true)
		assert.True(t, s.Bool("missing"))
	})
}

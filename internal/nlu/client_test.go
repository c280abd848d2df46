package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	t.Run("plain JSON untouched", func(t *testing.T) {
		assert.Equal(t, `{"query":"space"}`, stripCodeFences(`{"query":"space"}`))
	})

	t.Run("bare fences", func(t *testing.T) {
		in := "```\n{\"query\":\"space\"}\n```"
		assert.Equal(t, `{"query":"space"}`, stripCodeFences(in))
	})

	t.Run("json language tag", func(t *testing.T) {
		in := "```json\n{\"query\":\"space\"}\n```"
		assert.Equal(t, `{"query":"space"}`, stripCodeFences(in))
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, `{}`, stripCodeFences("  {}  \n"))
	})
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(WithBaseURL("http://localhost:8080"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)

	cfg = NewConfig(WithBaseURL("http://localhost:8080/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)

	cfg = NewConfig(WithBaseURL("http://localhost:8080/v1"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, NewConfig().Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig(WithModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing base URL", func(t *testing.T) {
		cfg := NewConfig(WithBaseURL(""))
		assert.Error(t, cfg.Validate())
	})
}

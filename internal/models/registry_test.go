package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms/fake"
)

func TestRegistryListSorted(t *testing.T) {
	r := NewModelRegistry(map[string]ModelProvider{
		"gpt4o":  {Name: "gpt-4o-mini", Type: OpenAIProvider},
		"claude": {Name: "claude-3-5-haiku", Type: AnthropicProvider},
	})

	infos := r.List()
	require.Len(t, infos, 2)
	assert.Equal(t, "claude", infos[0].ID)
	assert.Equal(t, AnthropicProvider, infos[0].Provider)
	assert.Equal(t, "gpt4o", infos[1].ID)
}

func TestRegistryUnknownModel(t *testing.T) {
	r := NewModelRegistry(nil)
	_, err := r.GetModel("missing")
	assert.Error(t, err)
}

func TestRegistryUnsupportedType(t *testing.T) {
	r := NewModelRegistry(map[string]ModelProvider{
		"x": {Name: "x", Type: ProviderType("cohere")},
	})
	_, err := r.GetModel("x")
	assert.ErrorContains(t, err, "unsupported model type")
}

func TestRegistryRegisteredInstance(t *testing.T) {
	r := NewModelRegistry(nil)
	llm := fake.NewFakeLLM([]string{"ok"})
	r.Register("fake", ModelProvider{Name: "fake", Type: OpenAIProvider}, llm)

	got, err := r.GetModel("fake")
	require.NoError(t, err)
	assert.Same(t, llm, got)
}

func TestRegistryCheckModel(t *testing.T) {
	r := NewModelRegistry(nil)
	r.Register("ok", ModelProvider{Name: "fake", Type: OllamaProvider}, fake.NewFakeLLM([]string{"ok"}))
	r.Register("silent", ModelProvider{Name: "fake", Type: OllamaProvider}, fake.NewFakeLLM(nil))

	assert.NoError(t, r.CheckModel(context.Background(), "ok"))
	assert.Error(t, r.CheckModel(context.Background(), "silent"))
	assert.ErrorIs(t, r.CheckModel(context.Background(), "missing"), ErrUnknownModel)
}

package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/llm"
	"polychat/backend/internal/model"
)

func TestLookup(t *testing.T) {
	for _, m := range model.Models {
		spec, ok := llm.Lookup(m)
		assert.True(t, ok, "model %s must be in the catalog", m)
		assert.NotEmpty(t, spec.VendorModel)
	}

	_, ok := llm.Lookup("gpt-2")
	assert.False(t, ok)
}

func TestModelSpec_NewChatRequest(t *testing.T) {
	one := float32(1)
	half := float32(0.5)
	maxTokens := 100

	t.Run("No settings", func(t *testing.T) {
		spec, _ := llm.Lookup(model.ModelGemini)
		req := spec.NewChatRequest(nil)
		assert.Equal(t, "gemini-2.5-pro", req.Model)
		assert.Empty(t, req.System)
		assert.Nil(t, req.Temperature)
		assert.Empty(t, req.ReasoningEffort)
	})

	t.Run("Sampling values of one are omitted", func(t *testing.T) {
		spec, _ := llm.Lookup(model.ModelGemini)
		req := spec.NewChatRequest(&model.ModelSettings{Temperature: &one, TopP: &half, MaxTokens: &maxTokens})
		assert.Nil(t, req.Temperature)
		require.NotNil(t, req.TopP)
		assert.Equal(t, half, *req.TopP)
		require.NotNil(t, req.MaxTokens)
		assert.Equal(t, 100, *req.MaxTokens)
	})

	t.Run("Sampling is ignored by OpenAI reasoning models", func(t *testing.T) {
		for _, m := range []model.AIModel{model.ModelGPT5, model.ModelGPT5Mini, model.ModelO3Mini} {
			spec, _ := llm.Lookup(m)
			req := spec.NewChatRequest(&model.ModelSettings{Temperature: &half, TopP: &half})
			assert.Nil(t, req.Temperature, "model %s", m)
			assert.Nil(t, req.TopP, "model %s", m)
		}
	})

	t.Run("Reasoning effort only for o3-mini", func(t *testing.T) {
		settings := &model.ModelSettings{ReasoningEffort: model.ReasoningLow}

		o3, _ := llm.Lookup(model.ModelO3Mini)
		assert.Equal(t, "low", o3.NewChatRequest(settings).ReasoningEffort)
		assert.Equal(t, "medium", o3.NewChatRequest(&model.ModelSettings{}).ReasoningEffort)

		for _, m := range []model.AIModel{model.ModelGPT5, model.ModelGPT5Mini, model.ModelGemini} {
			spec, _ := llm.Lookup(m)
			assert.Empty(t, spec.NewChatRequest(settings).ReasoningEffort, "model %s", m)
		}
	})
}

func TestRegistry(t *testing.T) {
	reg := llm.NewRegistry()
	_, err := reg.Provider(llm.VendorOpenAI)
	assert.ErrorContains(t, err, "openai API key is not configured")

	p := &llm.OpenAIProvider{}
	reg.Register(llm.VendorOpenAI, p)
	got, err := reg.Provider(llm.VendorOpenAI)
	require.NoError(t, err)
	assert.Same(t, p, got)
}

func TestImage_DataURL(t *testing.T) {
	img := &llm.Image{MIMEType: "image/png", Data: []byte("png")}
	assert.Equal(t, "data:image/png;base64,cG5n", img.DataURL())
}

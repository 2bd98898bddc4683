package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/model"
)

func TestAIModel_Valid(t *testing.T) {
	for _, m := range model.Models {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, model.AIModel("gpt-4").Valid())
	assert.False(t, model.AIModel("").Valid())
}

func TestTitleFromContent(t *testing.T) {
	t.Run("Long text is cut to exactly fifty characters", func(t *testing.T) {
		text := strings.Repeat("абвгд", 20)
		title, ok := model.TitleFromContent([]model.ContentPart{model.TextPart(text)})
		require.True(t, ok)
		assert.Equal(t, 50, len([]rune(title)))
		assert.Equal(t, string([]rune(text)[:50]), title)
	})

	t.Run("Short text is kept", func(t *testing.T) {
		title, ok := model.TitleFromContent([]model.ContentPart{model.TextPart("hello")})
		require.True(t, ok)
		assert.Equal(t, "hello", title)
	})

	t.Run("First text part wins over images", func(t *testing.T) {
		title, ok := model.TitleFromContent([]model.ContentPart{
			model.ImagePart("data:image/png;base64,AAAA"),
			model.TextPart("describe this"),
			model.TextPart("ignored"),
		})
		require.True(t, ok)
		assert.Equal(t, "describe this", title)
	})

	t.Run("No text part", func(t *testing.T) {
		_, ok := model.TitleFromContent([]model.ContentPart{model.ImagePart("x")})
		assert.False(t, ok)
	})
}

func TestStreamResponse_JSON(t *testing.T) {
	cases := map[string]model.StreamResponse{
		`{"content":"hi"}`:                 {Content: "hi"},
		`{"done":true}`:                    {Done: true},
		`{"error":"boom"}`:                 {Error: "boom"},
		`{"error":"boom","partial":true}`: {Error: "boom", Partial: true},
	}
	for want, ev := range cases {
		data, err := json.Marshal(ev)
		require.NoError(t, err)
		assert.JSONEq(t, want, string(data))
	}
	assert.True(t, model.StreamResponse{Done: true}.Terminal())
	assert.True(t, model.StreamResponse{Error: "x"}.Terminal())
	assert.False(t, model.StreamResponse{Content: "x"}.Terminal())
}

func TestPresetStatus_Public(t *testing.T) {
	assert.True(t, model.PresetAdmin.Public())
	assert.True(t, model.PresetApproved.Public())
	assert.False(t, model.PresetPending.Public())
	assert.False(t, model.PresetRejected.Public())
}

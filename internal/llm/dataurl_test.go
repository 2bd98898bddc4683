package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/llm"
)

func TestParseDataURL(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantMIME string
		wantData string
		wantErr  bool
	}{
		{name: "Base64 image", input: "data:image/png;base64,cG5n", wantMIME: "image/png", wantData: "png"},
		{name: "Percent encoded text", input: "data:text/plain,hello%20world", wantMIME: "text/plain", wantData: "hello world"},
		{name: "Default mime type", input: "data:;base64,aGk=", wantMIME: "text/plain", wantData: "hi"},
		{name: "Parameters are dropped", input: "data:text/plain;charset=utf-8;base64,aGk=", wantMIME: "text/plain", wantData: "hi"},
		{name: "Not a data URL", input: "https://example.com/cat.png", wantErr: true},
		{name: "Missing comma", input: "data:image/png;base64", wantErr: true},
		{name: "Broken base64", input: "data:image/png;base64,***", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mimeType, data, err := llm.ParseDataURL(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, llm.ErrInvalidDataURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMIME, mimeType)
			assert.Equal(t, tc.wantData, string(data))
		})
	}
}

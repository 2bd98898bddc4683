package attachment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/attachment"
	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/model"
)

// A 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func TestToContentPart(t *testing.T) {
	t.Run("Text file", func(t *testing.T) {
		part, err := attachment.ToContentPart(attachment.File{Name: "notes.txt", Data: []byte("hello\nworld")})
		require.NoError(t, err)
		assert.Equal(t, model.TextPart("[Contents of file notes.txt]:\nhello\nworld"), part)
	})

	t.Run("JSON counts as text", func(t *testing.T) {
		part, err := attachment.ToContentPart(attachment.File{Name: "data.json", Data: []byte(`{"a": 1}`)})
		require.NoError(t, err)
		assert.Equal(t, model.ContentText, part.Type)
	})

	t.Run("Image file", func(t *testing.T) {
		part, err := attachment.ToContentPart(attachment.File{Name: "dot.png", Data: pngBytes})
		require.NoError(t, err)
		assert.Equal(t, model.ContentImage, part.Type)
		assert.True(t, strings.HasPrefix(part.URL, "data:image/png;base64,iVBORw0KGgo"))
	})

	t.Run("PDF is rejected", func(t *testing.T) {
		_, err := attachment.ToContentPart(attachment.File{Name: "doc.pdf", Data: []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.ErrorContains(t, err, "PDF")
	})

	t.Run("Binary is rejected", func(t *testing.T) {
		_, err := attachment.ToContentPart(attachment.File{Name: "a.zip", Data: []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00")})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}

func TestToContentParts_StopsOnFirstError(t *testing.T) {
	_, err := attachment.ToContentParts([]attachment.File{
		{Name: "ok.txt", Data: []byte("ok")},
		{Name: "bad.pdf", Data: []byte("%PDF-1.4\n")},
	})
	assert.ErrorContains(t, err, "bad.pdf")

	parts, err := attachment.ToContentParts(nil)
	require.NoError(t, err)
	assert.Empty(t, parts)
}

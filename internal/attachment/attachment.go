// Package attachment converts uploaded files into message content parts.
package attachment

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/model"
)

// MaxUploadSize bounds the whole multipart request body.
const MaxUploadSize = 25 << 20

// File is an uploaded file read into memory.
type File struct {
	Name string
	Data []byte
}

// ToContentPart sniffs the file type and converts the file: text files become
// a text part prefixed with the file name, images become a data URL image
// part. Everything else is rejected with a validation error.
func ToContentPart(f File) (model.ContentPart, error) {
	mtype := mimetype.Detect(f.Data)

	switch {
	case isText(mtype):
		if !utf8.Valid(f.Data) {
			return model.ContentPart{}, fmt.Errorf("%w: file '%s' is not valid UTF-8 text", app_errors.ErrValidation, f.Name)
		}
		return model.TextPart(fmt.Sprintf("[Contents of file %s]:\n%s", f.Name, string(f.Data))), nil
	case strings.HasPrefix(mtype.String(), "image/"):
		url := fmt.Sprintf("data:%s;base64,%s", mtype.String(), base64.StdEncoding.EncodeToString(f.Data))
		return model.ImagePart(url), nil
	case mtype.Is("application/pdf"):
		return model.ContentPart{}, fmt.Errorf("%w: PDF attachments are not supported (file '%s')", app_errors.ErrValidation, f.Name)
	default:
		return model.ContentPart{}, fmt.Errorf("%w: unsupported file type '%s' for file '%s'", app_errors.ErrValidation, mtype.String(), f.Name)
	}
}

// ToContentParts converts every file, failing on the first unsupported one.
func ToContentParts(files []File) ([]model.ContentPart, error) {
	parts := make([]model.ContentPart, 0, len(files))
	for _, f := range files {
		p, err := ToContentPart(f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// isText walks the detected type's ancestry, so JSON, CSV and source files
// (all children of text/plain) count as text.
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return true
		}
	}
	return false
}

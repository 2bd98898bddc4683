package llm

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidDataURL = errors.New("invalid data URL")

// ParseDataURL decodes a "data:<mime>[;base64],<payload>" URL.
func ParseDataURL(s string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}

	isBase64 := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		meta = m
		isBase64 = true
	}
	mimeType, _, _ = strings.Cut(meta, ";")
	if mimeType == "" {
		mimeType = "text/plain"
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, errors.Join(ErrInvalidDataURL, err)
		}
		return mimeType, data, nil
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, errors.Join(ErrInvalidDataURL, err)
	}
	return mimeType, []byte(decoded), nil
}

// IsDataURL reports whether s looks like a data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

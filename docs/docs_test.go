package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDoc(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath    string                    `json:"basePath"`
		Paths       map[string]map[string]any `json:"paths"`
		Definitions map[string]struct {
			Properties map[string]any `json:"properties"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api", doc.BasePath)

	routes := map[string][]string{
		"/register":                    {"post"},
		"/login":                       {"post"},
		"/logout":                      {"post"},
		"/user":                        {"get"},
		"/chat":                        {"post"},
		"/generate-image":              {"post"},
		"/conversations":               {"get", "post"},
		"/conversations/{id}":          {"get", "patch", "delete"},
		"/conversations/{id}/messages": {"get", "post"},
		"/presets":                     {"get", "post"},
		"/presets/pending":             {"get"},
		"/presets/user":                {"post"},
		"/presets/{id}":                {"get", "put", "delete"},
		"/presets/{id}/status":         {"patch"},
	}
	operations := 0
	for path, methods := range routes {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, path)
		}
		operations += len(doc.Paths[path])
	}
	assert.Len(t, doc.Paths, len(routes))
	assert.Equal(t, 21, operations)

	preset := doc.Definitions["model.PresetPrompt"].Properties
	for _, field := range []string{"id", "userId", "name", "description", "modelSettings", "status", "createdAt", "updatedAt"} {
		assert.Contains(t, preset, field)
	}
}

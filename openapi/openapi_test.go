package openapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/tripboard/openapi"
)

// TestDocument_ListsEveryRoute parses the embedded document and checks that
// the board's main paths are described.
func TestDocument_ListsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(openapi.Document, &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	routes := [][2]string{
		{"/healthz", "get"},
		{"/trips", "post"},
		{"/trips/{tripId}", "get"},
		{"/trips/{tripId}/days/reorder", "post"},
		{"/trips/{tripId}/activities/{activityId}/move", "post"},
		{"/trips/{tripId}/days/{dayId}/accommodation/auto", "post"},
		{"/trips/{tripId}/trash/{trashId}/restore", "post"},
		{"/trips/{tripId}/drag/end", "post"},
		{"/trips/{tripId}/export", "get"},
		{"/suggestions", "get"},
	}
	for _, rt := range routes {
		path, method := rt[0], rt[1]
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, path)
	}
}

func TestHandler_ServesYAML(t *testing.T) {
	rec := httptest.NewRecorder()
	openapi.Handler(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, openapi.Document, rec.Body.Bytes())
}

// Package openapi embeds the OpenAPI document for the trip board API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package openapi

import (
	_ "embed"
	"net/http"
)

// Document contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var Document []byte

// Handler serves Document as YAML.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(Document)
}

// Package api builds the huma API shared by the server and the handler tests.
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
)

// DocsPath serves the interactive API reference.
const DocsPath = "/api-docs"

// NewConfig returns the huma configuration for the greeting API.
//
// The default create hooks are dropped so huma does not inject a $schema member into response
// bodies: a greeting is exactly {"id":…,"content":…}.
func NewConfig(title, version string) huma.Config {
	cfg := huma.DefaultConfig(title, version)
	cfg.DocsPath = DocsPath
	cfg.CreateHooks = nil
	return cfg
}

// New mounts a huma API on router and advertises application/cbor next to every
// application/json body in the generated OpenAPI document.
func New(router chi.Router, cfg huma.Config) huma.API {
	api := humachi.New(router, cfg)
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)
	return api
}

func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

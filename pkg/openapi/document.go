package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	defaultPath        = "/submissions"
	defaultOperationID = "submitForm"
	defaultVersion     = "1.0"
	untitledForm       = "Untitled form"
)

// DocumentOption customises SubmissionDocument.
type DocumentOption func(*documentConfig)

type documentConfig struct {
	path        string
	operationID string
	version     string
}

// WithPath overrides the submission endpoint path.
func WithPath(path string) DocumentOption {
	return func(cfg *documentConfig) {
		if path != "" {
			cfg.path = path
		}
	}
}

// WithOperationID overrides the POST operation id.
func WithOperationID(id string) DocumentOption {
	return func(cfg *documentConfig) {
		if id != "" {
			cfg.operationID = id
		}
	}
}

// WithVersion sets the info.version of the generated document.
func WithVersion(version string) DocumentOption {
	return func(cfg *documentConfig) {
		if version != "" {
			cfg.version = version
		}
	}
}

// SubmissionDocument wraps SubmissionSchema in a minimal OpenAPI 3 document
// exposing a single POST operation that accepts the form's answers.
func SubmissionDocument(state model.FormState, options ...DocumentOption) *openapi3.T {
	cfg := documentConfig{
		path:        defaultPath,
		operationID: defaultOperationID,
		version:     defaultVersion,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	title := state.Settings.Title
	if title == "" {
		title = untitledForm
	}

	success := state.Settings.SuccessMessage
	if success == "" {
		success = model.DefaultSuccessMessage
	}

	op := openapi3.NewOperation()
	op.OperationID = cfg.operationID
	op.Summary = title
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchema(SubmissionSchema(state)),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription(success),
		}),
	)

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Description: state.Settings.Description,
			Version:     cfg.version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(cfg.path, &openapi3.PathItem{Post: op}),
		),
	}
}

// Package openapi describes a form's submission payload as an OpenAPI schema.
// Each component becomes a property keyed by its id; required components are
// listed in the schema's required set and descriptive validation rules are
// carried over as string constraints.
package openapi

package render

// RenderOptions carry per-request data renderers use to customise output
// without touching the form itself.
type RenderOptions struct {
	// Values pre-populates controls, keyed by component id.
	Values map[string]any
	// Errors holds inline messages keyed by component id. Build it with
	// MapErrorPayload.
	Errors map[string][]string
	// FormErrors are shown above the fields, e.g. validation results.
	FormErrors []string
	// Hidden fields are emitted as hidden inputs in name order.
	Hidden map[string]string
}

package template

import "io"

// TemplateRenderer renders named or inline templates against a data value.
// Results are returned and, when writers are passed, copied to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

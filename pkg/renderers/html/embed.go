package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// TemplatesFS exposes the bundled templates so callers can extend them.
func TemplatesFS() fs.FS {
	return templatesFS
}

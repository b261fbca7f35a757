package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips all markup from author-entered text. The result is
// HTML-escaped and safe to emit both as element content and inside quoted
// attributes.
func sanitizeText(raw string) string {
	return strings.TrimSpace(textSanitizer().Sanitize(raw))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

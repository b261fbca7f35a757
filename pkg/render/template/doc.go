// Package template defines the template engine seam used by markup renderers.
package template

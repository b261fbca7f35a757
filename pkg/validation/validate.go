// Package validation checks a form's structure before it is published. The
// result is a report for the author, not a control-flow error.
package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Messages produced by Validate.
const (
	MsgTitleRequired     = "Form title is required"
	MsgComponentRequired = "Form must have at least one component"
)

// Result captures validation outcomes. Errors keeps rule order.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate runs the structural rules over state and collects every failure:
// title, component count, then per component its label and, for choice
// types, its options.
func Validate(state model.FormState) Result {
	errs := make([]string, 0)

	if strings.TrimSpace(state.Settings.Title) == "" {
		errs = append(errs, MsgTitleRequired)
	}
	if len(state.Components) == 0 {
		errs = append(errs, MsgComponentRequired)
	}

	for i, component := range state.Components {
		if strings.TrimSpace(component.Label) == "" {
			errs = append(errs, fmt.Sprintf("Component %d is missing a label", i+1))
		}
		if component.Type.HasOptions() && len(component.Options) == 0 {
			errs = append(errs, fmt.Sprintf("%s must have at least one option", component.Label))
		}
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

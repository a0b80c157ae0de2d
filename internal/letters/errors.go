package letters

import (
	"fmt"
	"strings"
)

// TemplateRenderError reports a failed render with enough structure for
// the UI to point at the offending tag.
type TemplateRenderError struct {
	Tag      string
	Category string
	Message  string
}

func (e *TemplateRenderError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("render failed (%s) at %q: %s", e.Category, e.Tag, e.Message)
	}
	return fmt.Sprintf("render failed (%s): %s", e.Category, e.Message)
}

// MissingFieldError blocks generation while any detected placeholder is
// still empty. Fields holds the offending placeholder names.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("unresolved template fields: %s", strings.Join(e.Fields, ", "))
}

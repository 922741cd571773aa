package domain

import "strings"

// ValidationError carries the user-facing warnings for rejected input.
// No model call is made and nothing is recorded when it is returned.
type ValidationError struct {
	Warnings []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Warnings, "; ")
}

// Warning returns the first warning, which is the one shown on the page.
func (e *ValidationError) Warning() string {
	if len(e.Warnings) == 0 {
		return ""
	}
	return e.Warnings[0]
}

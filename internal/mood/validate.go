package mood

import (
	"fmt"
	"strings"

	errorvalues "github.com/limbo/moodtrack/internal/error_values"
)

// ValidateSubmission checks a candidate entry before it leaves the client:
// a mood on the scale must be selected and the note must have content.
func ValidateSubmission(value *int, note string) error {
	if value == nil {
		return fmt.Errorf("%w: mood is not selected", errorvalues.ErrValidation)
	}
	if !IsValid(*value) {
		return fmt.Errorf("%w: mood %d is out of scale", errorvalues.ErrValidation, *value)
	}
	if strings.TrimSpace(note) == "" {
		return fmt.Errorf("%w: note is empty", errorvalues.ErrValidation)
	}
	return nil
}

package aggregator

import (
	"fmt"
	"strings"
)

// InvalidOutcomeError reports a symptoms value that is not yes/no. The row
// is never coerced to an outcome; callers decide whether to abort or drop.
type InvalidOutcomeError struct {
	Value string
}

func (e *InvalidOutcomeError) Error() string {
	return fmt.Sprintf("unexpected symptoms value %q; need 'yes' or 'no'", e.Value)
}

// DecodeOutcome turns a raw symptoms cell into a binary outcome:
// "yes" -> 1, "no" -> 0, case-insensitive. Anything else is an error.
func DecodeOutcome(raw string) (int, error) {
	switch strings.ToLower(raw) {
	case "yes":
		return 1, nil
	case "no":
		return 0, nil
	default:
		return 0, &InvalidOutcomeError{Value: raw}
	}
}

// =============================================================================
// ORAE Bridge - Validation Support
// =============================================================================
//
// Shared building blocks for the two validators in this repository: the
// input validator (internal/orae) and the record set validator (internal/rims).
//
// ERROR HANDLING:
//   - Violations are collected, never returned as Go errors
//   - Every check runs; nothing stops at the first failure
//   - The caller decides what to do with a non-empty list
//
// =============================================================================

package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// =============================================================================
// COMMON PATTERNS
// =============================================================================

var (
	// CurrencyPattern matches an ISO-4217 currency code.
	CurrencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

	// DecimalPattern matches a signed decimal string with up to 4 fractional digits.
	DecimalPattern = regexp.MustCompile(`^-?[0-9]{1,18}(\.[0-9]{1,4})?$`)
)

// =============================================================================
// VIOLATION COLLECTOR
// =============================================================================

// Violations accumulates human readable violation messages in the order
// the checks ran.
type Violations struct {
	items []string
}

// Add appends a violation message.
func (v *Violations) Add(msg string) {
	v.items = append(v.items, msg)
}

// Addf appends a formatted violation message.
func (v *Violations) Addf(format string, args ...interface{}) {
	v.items = append(v.items, fmt.Sprintf(format, args...))
}

// RequireString records "Missing required field: <path>" when value is empty.
// It reports whether the value was present.
func (v *Violations) RequireString(path, value string) bool {
	if value == "" {
		v.Addf("Missing required field: %s", path)
		return false
	}
	return true
}

// RequireObject records "Missing required object: <path>" when present is false.
func (v *Violations) RequireObject(path string, present bool) bool {
	if !present {
		v.Addf("Missing required object: %s", path)
	}
	return present
}

// List returns the collected violations. The result is never nil.
func (v *Violations) List() []string {
	if v.items == nil {
		return []string{}
	}
	out := make([]string, len(v.items))
	copy(out, v.items)
	return out
}

// =============================================================================
// HELPERS
// =============================================================================

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// OneOf reports whether value is one of the allowed values (case-sensitive).
func OneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// =============================================================================
// OUTPUT FUNCTIONS
// =============================================================================

// FormatErrors formats violations for display or logging.
//
// PARAMETERS:
//   - violations: The violation messages to format.
//
// RETURNS:
//   - A formatted string containing all violations.
func FormatErrors(violations []string) string {
	if len(violations) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(violations)))
	for i, msg := range violations {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, msg))
	}
	return builder.String()
}

// WriteErrorLog writes violations to a log file under dir and returns its path.
//
// PARAMETERS:
//   - violations: The violation messages to write.
//   - dir: The directory that receives the log file.
//   - source: A label for the rejected input (file name or message id).
//
// RETURNS:
//   - The path to the written file.
//   - An error if writing fails.
func WriteErrorLog(violations []string, dir, source string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create error log directory: %w", err)
	}

	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("validation_errors_%s.log", now.Format("20060102_150405")))

	var builder strings.Builder
	builder.WriteString("ORAE Bridge Validation Error Log\n")
	builder.WriteString(fmt.Sprintf("Generated: %s\n", now.Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf("Source: %s\n\n", source))
	builder.WriteString(FormatErrors(violations))

	if err := os.WriteFile(path, []byte(builder.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}
	return path, nil
}

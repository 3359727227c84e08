// Package validation provides input validation for the drugscan API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
)

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all validations
var (
	// Query validation: alphanumeric plus the punctuation that appears on
	// drug packaging (hyphens, slashes, dots, plus, percent, parentheses)
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\./\+%'(),:]+$`)

	// Registration numbers after normalization: letters and digits only
	nafdacRegex = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)

	// Dangerous patterns as strings (faster than regex for simple substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "eval(", "expression(", "@import",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// Compile-time check to ensure InputValidatorImpl implements InputValidator
var _ interfaces.InputValidator = (*InputValidatorImpl)(nil)

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

// ValidateInput validates a user-supplied query string before it reaches
// the matcher.
func (v *InputValidatorImpl) ValidateInput(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(trimmed) > 200 {
		return fmt.Errorf("input too long: %d characters (max 200)", len(trimmed))
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("input contains disallowed pattern")
		}
	}

	if !inputRegex.MatchString(trimmed) {
		return fmt.Errorf("input contains invalid characters")
	}

	return nil
}

// ValidateNafdac normalizes a registration number and checks its shape.
// Returns the normalized number on success.
func (v *InputValidatorImpl) ValidateNafdac(input string) (string, error) {
	norm := entities.NormalizeNafdac(input)
	if norm == "" {
		return "", fmt.Errorf("registration number cannot be empty")
	}

	if !nafdacRegex.MatchString(norm) {
		return "", fmt.Errorf("invalid registration number: %s", input)
	}

	return norm, nil
}

// ValidateTrimester parses and validates a trimester parameter.
func (v *InputValidatorImpl) ValidateTrimester(input string) (entities.Trimester, error) {
	trimester := entities.Trimester(strings.ToLower(strings.TrimSpace(input)))
	if !entities.ValidTrimester(trimester) {
		return "", fmt.Errorf("trimester must be one of first, second, third, got: %s", input)
	}
	return trimester, nil
}

package middleware

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bryanwahyu/code-doctor/internal/domain/analysis"
)

// Input validation and sanitization utilities

var rxLanguage = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_+#.-]{0,31}$`)

// ValidateLanguage checks the language tag looks like an identifier
// ("python", "c++", "c#", "objective-c"). Empty is left to the domain check.
func ValidateLanguage(language string) error {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil
	}
	if !rxLanguage.MatchString(language) {
		return fmt.Errorf("%w: invalid language %q", analysis.ErrInvalidRequest, language)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

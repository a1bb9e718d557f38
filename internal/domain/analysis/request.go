package analysis

import (
	"fmt"
	"strings"
)

// NewRequest validates the input and normalizes the language tag to lower case.
func NewRequest(code, language, errorMessage string) (Request, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if strings.TrimSpace(code) == "" || lang == "" {
		return Request{}, fmt.Errorf("%w: code and language are required", ErrInvalidRequest)
	}
	return Request{
		Code:         code,
		Language:     lang,
		ErrorMessage: strings.TrimSpace(errorMessage),
	}, nil
}

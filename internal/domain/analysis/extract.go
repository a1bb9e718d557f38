package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	fallbackErrorType   = "Analysis Error"
	fallbackRootCause   = "Could not parse AI response"
	fallbackEnglish     = "Error analyzing code"
	fallbackHindi       = "कोड का विश्लेषण करने में त्रुटि"
	fallbackFixNote     = "Please review the code manually"
	fallbackLearningTip = "Use console.log to debug"
	fallbackConfidence  = 50
)

var (
	rxErrorType = regexp.MustCompile(`"errorType"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	rxRootCause = regexp.MustCompile(`"rootCause"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// Extract turns a raw model reply into a Record. It never fails: when no
// object can be decoded it returns FallbackRecord built from the reply.
func Extract(raw, code string) Record {
	rec, err := ParseRecord(raw)
	if err != nil {
		return FallbackRecord(raw, code)
	}
	return rec
}

// ParseRecord isolates the span between the first '{' and the last '}',
// sanitizes it and decodes it. Errors wrap ErrNoJSONFound or ErrMalformedJSON.
func ParseRecord(raw string) (Record, error) {
	candidate, ok := locateObject(raw)
	if !ok {
		return nil, ErrNoJSONFound
	}

	var rec Record
	if err := json.Unmarshal([]byte(Sanitize(candidate)), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return rec, nil
}

// FallbackRecord builds the minimal safe record, salvaging errorType and
// rootCause from the reply when they are present as plain string fields.
func FallbackRecord(raw, code string) Record {
	text := jsonCandidate(raw)
	return Record{
		FieldErrorType:          firstGroup(rxErrorType, text, fallbackErrorType),
		FieldSeverity:           "warning",
		FieldExplanationEnglish: fallbackEnglish,
		FieldExplanationHindi:   fallbackHindi,
		FieldRootCause:          firstGroup(rxRootCause, text, fallbackRootCause),
		FieldFixedCode:          code,
		FieldFixExplanation:     fallbackFixNote,
		FieldComplexity:         ComplexityMedium,
		FieldConfidence:         float64(fallbackConfidence),
		FieldAlternatives:       []any{},
		FieldVariableSnapshot:   map[string]any{},
		FieldLearningResources:  []any{},
		FieldLearningTip:        fallbackLearningTip,
	}
}

func locateObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || start >= end {
		return "", false
	}
	return raw[start : end+1], true
}

// jsonCandidate returns the brace span used for salvage, or the whole text.
func jsonCandidate(raw string) string {
	if candidate, ok := locateObject(raw); ok {
		return candidate
	}
	return raw
}

func firstGroup(rx *regexp.Regexp, text, def string) string {
	m := rx.FindStringSubmatch(text)
	if len(m) < 2 || m[1] == "" {
		return def
	}
	// unquote escapes; a match with invalid escapes is kept as written
	if v, err := strconv.Unquote(`"` + m[1] + `"`); err == nil {
		return v
	}
	return m[1]
}

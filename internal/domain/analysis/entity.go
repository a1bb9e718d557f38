package analysis

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Request adalah input pipeline analisis
type Request struct {
	Code         string `json:"code"`
	Language     string `json:"language"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Alternative value object
type Alternative struct {
	Title       string `json:"title" yaml:"title"`
	Code        string `json:"code" yaml:"code"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// Resource value object
type Resource struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Explanation struct {
	English string `json:"english" yaml:"english"`
	Hindi   string `json:"hindi" yaml:"hindi"`
}

type SuggestedFix struct {
	Code        string `json:"code" yaml:"code"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// FinalAnalysis is the fixed-shape report returned to callers.
// Alternatives and LearningResources always hold exactly 3 entries.
type FinalAnalysis struct {
	ErrorType         string            `json:"errorType" yaml:"errorType"`
	Severity          string            `json:"severity" yaml:"severity"`
	Explanation       Explanation       `json:"explanation" yaml:"explanation"`
	RootCause         string            `json:"rootCause" yaml:"rootCause"`
	SuggestedFix      SuggestedFix      `json:"suggestedFix" yaml:"suggestedFix"`
	Complexity        *string           `json:"complexity" yaml:"complexity"`
	Confidence        float64           `json:"confidence" yaml:"confidence"`
	Alternatives      []Alternative     `json:"alternatives" yaml:"alternatives"`
	VariableSnapshot  map[string]string `json:"variableSnapshot,omitempty" yaml:"variableSnapshot,omitempty"`
	LearningResources []Resource        `json:"learningResources" yaml:"learningResources"`
	LearningTip       string            `json:"learningTip" yaml:"learningTip"`

	// Tier is the complexity as reported by the model, empty when it was absent.
	Tier string `json:"-" yaml:"-"`
}

// ComplexityTier returns the tier behind the rendered complexity label, or ""
// when the model did not report one. A nil label alone cannot tell "Low" from
// absent, so values decoded from JSON only recover non-Low tiers.
func (f FinalAnalysis) ComplexityTier() string {
	if f.Tier != "" {
		return f.Tier
	}
	if f.Complexity == nil {
		return ""
	}
	return strings.TrimPrefix(*f.Complexity, complexityPrefix)
}

// Record keys as emitted by the model.
const (
	FieldErrorType          = "errorType"
	FieldSeverity           = "severity"
	FieldRootCause          = "rootCause"
	FieldExplanationEnglish = "explanationEnglish"
	FieldExplanationHindi   = "explanationHindi"
	FieldFixedCode          = "fixedCode"
	FieldFixExplanation     = "fixExplanation"
	FieldComplexity         = "complexity"
	FieldConfidence         = "confidence"
	FieldAlternatives       = "alternatives"
	FieldVariableSnapshot   = "variableSnapshot"
	FieldLearningResources  = "learningResources"
	FieldLearningTip        = "learningTip"
)

const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"

	complexityPrefix = "Complexity: "
)

// Record is the loosely-typed analysis decoded from a model reply.
// Every field is optional; accessors check presence and shape at the call site.
type Record map[string]any

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Text returns the field rendered as text, or "" when absent.
func (r Record) Text(key string) string {
	return textOf(r[key])
}

// Number returns a numeric field. Numeric strings are accepted, anything else is 0.
func (r Record) Number(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Alternatives returns the object entries of the alternatives array.
// Entries that are not objects are skipped.
func (r Record) Alternatives() []Alternative {
	items := objects(r[FieldAlternatives])
	out := make([]Alternative, 0, len(items))
	for _, m := range items {
		out = append(out, Alternative{
			Title:       textOf(m["title"]),
			Code:        textOf(m["code"]),
			Explanation: textOf(m["explanation"]),
		})
	}
	return out
}

// LearningResources returns the object entries of the learningResources array.
func (r Record) LearningResources() []Resource {
	items := objects(r[FieldLearningResources])
	out := make([]Resource, 0, len(items))
	for _, m := range items {
		out = append(out, Resource{
			Title:       textOf(m["title"]),
			Description: textOf(m["description"]),
		})
	}
	return out
}

// VariableSnapshot returns the snapshot mapping with every value rendered as text.
func (r Record) VariableSnapshot() map[string]string {
	m, ok := r[FieldVariableSnapshot].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = textOf(v)
	}
	return out
}

func objects(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, it := range arr {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

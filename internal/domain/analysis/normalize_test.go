package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func altEntries(n int) []any {
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, map[string]any{
			"title":       fmt.Sprintf("alt %d", i),
			"code":        "code",
			"explanation": "why",
		})
	}
	return out
}

func resourceEntries(n int) []any {
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, map[string]any{"title": fmt.Sprintf("res %d", i), "description": "d"})
	}
	return out
}

func TestNormalize_CollectionsAlwaysThree(t *testing.T) {
	req := Request{Code: "x = 1", Language: "python"}
	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d entries", n), func(t *testing.T) {
			rec := Record{
				FieldAlternatives:      altEntries(n),
				FieldLearningResources: resourceEntries(n),
			}
			got := Normalize(rec, req)
			require.Len(t, got.Alternatives, 3)
			require.Len(t, got.LearningResources, 3)
			for i := 0; i < min(n, 3); i++ {
				assert.Equal(t, fmt.Sprintf("alt %d", i), got.Alternatives[i].Title)
				assert.Equal(t, fmt.Sprintf("res %d", i), got.LearningResources[i].Title)
			}
		})
	}
}

func TestNormalize_MissingCollections(t *testing.T) {
	got := Normalize(Record{}, Request{Code: "let a = 1;", Language: "javascript"})

	require.Len(t, got.Alternatives, 3)
	assert.Equal(t, "Add Error Handling", got.Alternatives[0].Title)
	assert.Equal(t, "Add Input Validation", got.Alternatives[1].Title)
	assert.Equal(t, "Add Type Checking", got.Alternatives[2].Title)
	require.Len(t, got.LearningResources, 3)
	assert.Equal(t, "JavaScript Error Handling", got.LearningResources[0].Title)
}

func TestNormalize_OneAlternativePython(t *testing.T) {
	rec := Record{FieldAlternatives: altEntries(1)}

	got := Normalize(rec, Request{Code: "x = 5", Language: "python"})

	require.Len(t, got.Alternatives, 3)
	assert.Equal(t, "alt 0", got.Alternatives[0].Title)
	assert.Equal(t, "Add Input Validation", got.Alternatives[1].Title)
	assert.Equal(t, "Add Type Checking", got.Alternatives[2].Title)
	assert.Contains(t, got.Alternatives[2].Code, "runtime type checking")
}

func TestNormalize_Complexity(t *testing.T) {
	low := Normalize(Record{FieldComplexity: "Low"}, Request{Code: "a", Language: "c"})
	assert.Nil(t, low.Complexity)
	assert.Equal(t, "Low", low.ComplexityTier())

	high := Normalize(Record{FieldComplexity: "High"}, Request{Code: "a", Language: "c"})
	require.NotNil(t, high.Complexity)
	assert.Equal(t, "Complexity: High", *high.Complexity)
	assert.Equal(t, "High", high.ComplexityTier())

	medium := Normalize(Record{FieldComplexity: "Medium"}, Request{Code: "a", Language: "c"})
	assert.Equal(t, "Medium", medium.ComplexityTier())

	absent := Normalize(Record{}, Request{Code: "a", Language: "c"})
	assert.Nil(t, absent.Complexity)
	assert.Empty(t, absent.ComplexityTier())

	decoded := FinalAnalysis{Complexity: high.Complexity}
	assert.Equal(t, "High", decoded.ComplexityTier())

	// exact match only
	lower := Normalize(Record{FieldComplexity: "low"}, Request{Code: "a", Language: "c"})
	require.NotNil(t, lower.Complexity)
	assert.Equal(t, "Complexity: low", *lower.Complexity)
}

func TestNormalize_SnapshotResolution(t *testing.T) {
	req := Request{Code: "x = 5\ny = 'hello'", Language: "python"}

	fromModel := Normalize(Record{FieldVariableSnapshot: map[string]any{"z": float64(3)}}, req)
	assert.Equal(t, map[string]string{"z": "3"}, fromModel.VariableSnapshot)

	derived := Normalize(Record{FieldVariableSnapshot: map[string]any{}}, req)
	assert.Equal(t, map[string]string{"x": "5", "y": "'hello'"}, derived.VariableSnapshot)

	none := Normalize(Record{}, Request{Code: "int main() {}", Language: "cpp"})
	assert.Nil(t, none.VariableSnapshot)
}

func TestNormalize_Passthrough(t *testing.T) {
	rec := Record{
		FieldErrorType:          "Index Error",
		FieldSeverity:           "critical",
		FieldRootCause:          "off by one",
		FieldExplanationEnglish: "english",
		FieldExplanationHindi:   "hindi",
		FieldFixedCode:          "fixed",
		FieldFixExplanation:     "because",
		FieldConfidence:         float64(120),
		FieldLearningTip:        "tip",
	}

	got := Normalize(rec, Request{Code: "a", Language: "python"})

	assert.Equal(t, "Index Error", got.ErrorType)
	assert.Equal(t, "critical", got.Severity)
	assert.Equal(t, "off by one", got.RootCause)
	assert.Equal(t, Explanation{English: "english", Hindi: "hindi"}, got.Explanation)
	assert.Equal(t, SuggestedFix{Code: "fixed", Explanation: "because"}, got.SuggestedFix)
	assert.Equal(t, float64(120), got.Confidence)
	assert.Equal(t, "tip", got.LearningTip)
}

func TestAnalyzeCode_FallbackIsComplete(t *testing.T) {
	req := Request{Code: "const a = 1;\nconsole.log(a)", Language: "javascript"}

	got := AnalyzeCode(req, "no json here")

	assert.Equal(t, "Analysis Error", got.ErrorType)
	assert.Equal(t, req.Code, got.SuggestedFix.Code)
	require.NotNil(t, got.Complexity)
	assert.Equal(t, "Complexity: Medium", *got.Complexity)
	assert.Equal(t, float64(50), got.Confidence)
	assert.Len(t, got.Alternatives, 3)
	assert.Len(t, got.LearningResources, 3)
	assert.Equal(t, map[string]string{"a": "1"}, got.VariableSnapshot)
}

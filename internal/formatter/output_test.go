package formatter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/code-doctor/internal/domain/analysis"
)

func sample() analysis.FinalAnalysis {
	req := analysis.Request{Code: "x = 5\nprint(y)", Language: "python"}
	return analysis.Normalize(analysis.Record{
		"errorType":          "NameError",
		"severity":           "critical",
		"rootCause":          "y is not defined",
		"explanationEnglish": "y is used but never assigned",
		"fixedCode":          "y = 5\nprint(y)",
		"complexity":         "High",
		"confidence":         87.5,
		"learningTip":        "Read the traceback bottom-up",
	}, req)
}

func TestRender_Human(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), "human"))

	out := buf.String()
	assert.Contains(t, out, "NameError")
	assert.Contains(t, out, "SEVERITY: CRITICAL")
	assert.Contains(t, out, "confidence 87.5%")
	assert.Contains(t, out, "Complexity: High")
	assert.Contains(t, out, "      try:")
	assert.Contains(t, out, "x = 5")
	assert.Contains(t, out, "Tip: Read the traceback bottom-up")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Complexity: High", got["complexity"])
	assert.Len(t, got["alternatives"], 3)
	assert.Equal(t, map[string]any{"x": "5"}, got["variableSnapshot"])
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), "YAML"))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "NameError", got["errorType"])
	assert.Len(t, got["learningResources"], 3)
}

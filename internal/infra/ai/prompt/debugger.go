package prompt

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/code-doctor/internal/domain/analysis"
)

// schema is the exact reply shape the debugger prompt asks for.
const schema = `{
  "errorType": "Brief error title (max 60 chars) or 'No Errors Found' if code is correct",
  "severity": "critical" | "warning" | "info",
  "rootCause": "Brief root cause explanation (max 100 chars). If no errors, write 'Code is syntactically correct and performs as expected.'",
  "explanationEnglish": "Brief explanation in English (max 150 chars). If no errors, explain what the code does.",
  "explanationHindi": "Brief explanation in Hindi (max 150 chars). If no errors, explain what the code does in Hindi.",
  "fixedCode": "The corrected code or improved version. If no errors, return the same code or suggest minor improvements.",
  "fixExplanation": "Brief fix explanation (max 100 chars). If no errors, write 'No fixes needed' or suggest improvements.",
  "complexity": "Low" | "Medium" | "High",
  "confidence": 85-99 (number),
  "alternatives": [
    {
      "title": "Brief title (max 30 chars)",
      "code": "Alternative code solution or improvement",
      "explanation": "Brief description (max 80 chars)"
    }
  ] (provide EXACTLY 3 alternatives specific to this code),
  "variableSnapshot": {
    "variableName": "value"
  } (extract ACTUAL variables with their values from THIS code),
  "learningResources": [
    {"title": "Resource title (max 50 chars)", "description": "Brief description (max 80 chars)"}
  ] (provide EXACTLY 3 resources relevant to THIS specific code's concepts),
  "learningTip": "Brief learning tip (max 150 chars) relevant to this SPECIFIC code"
}`

const rules = `Important:
- Keep ALL text brief to fit UI layout
- ALWAYS provide EXACTLY 3 alternatives relevant to THIS specific code
- ALWAYS provide EXACTLY 3 learning resources relevant to THIS specific code's concepts
- For variableSnapshot, extract ACTUAL variables with their values from THIS code
- Learning resources MUST be specific to the concepts/patterns used in THIS code
- Learning tip MUST be specific to THIS code, not generic advice
- If code has NO errors, still provide improvements and relevant learning resources
- IMPORTANT: Return ONLY valid JSON with no markdown, no explanations, just the JSON object`

// Build renders the debugger instruction for one analysis request.
func Build(req analysis.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert code debugger. Analyze this %s code and provide a detailed analysis.\n\n", req.Language)
	fmt.Fprintf(&b, "Code:\n```%s\n%s\n```\n\n", req.Language, req.Code)
	if req.ErrorMessage != "" {
		fmt.Fprintf(&b, "Error Message: %s\n\n", req.ErrorMessage)
	}
	b.WriteString("Provide your analysis in the following JSON format:\n")
	b.WriteString(schema)
	b.WriteString("\n\n")
	b.WriteString(rules)
	return b.String()
}

package analysis

// Normalize assembles the fixed-shape report from a loose record. Collections
// are padded or truncated to 3, the snapshot is derived from the code when the
// model left it empty, and "Low" complexity is rendered as null.
func Normalize(rec Record, req Request) FinalAnalysis {
	alternatives := rec.Alternatives()
	if len(alternatives) != alternativeCount {
		alternatives = SynthesizeAlternatives(req.Code, req.Language, alternatives)
	}

	resources := rec.LearningResources()
	if len(resources) != resourceCount {
		resources = SynthesizeResources(req.Language, req.Code, resources)
	}

	snapshot := rec.VariableSnapshot()
	if len(snapshot) == 0 {
		snapshot = DeriveSnapshot(req.Code, req.Language)
	}
	if len(snapshot) == 0 {
		snapshot = nil
	}

	return FinalAnalysis{
		ErrorType: rec.Text(FieldErrorType),
		Severity:  rec.Text(FieldSeverity),
		Explanation: Explanation{
			English: rec.Text(FieldExplanationEnglish),
			Hindi:   rec.Text(FieldExplanationHindi),
		},
		RootCause: rec.Text(FieldRootCause),
		SuggestedFix: SuggestedFix{
			Code:        rec.Text(FieldFixedCode),
			Explanation: rec.Text(FieldFixExplanation),
		},
		Complexity:        projectComplexity(rec),
		Confidence:        rec.Number(FieldConfidence),
		Alternatives:      alternatives,
		VariableSnapshot:  snapshot,
		LearningResources: resources,
		LearningTip:       rec.Text(FieldLearningTip),
		Tier:              complexityTier(rec),
	}
}

// AnalyzeCode runs the full repair pipeline over a model reply.
func AnalyzeCode(req Request, modelText string) FinalAnalysis {
	return Normalize(Extract(modelText, req.Code), req)
}

func complexityTier(rec Record) string {
	if !rec.Has(FieldComplexity) {
		return ""
	}
	return rec.Text(FieldComplexity)
}

func projectComplexity(rec Record) *string {
	if !rec.Has(FieldComplexity) {
		return nil
	}
	value := rec.Text(FieldComplexity)
	if value == ComplexityLow {
		return nil
	}
	label := complexityPrefix + value
	return &label
}

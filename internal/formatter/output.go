package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/code-doctor/internal/domain/analysis"
)

const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Render writes the analysis to w in the requested format.
// Unknown formats fall back to human output.
func Render(w io.Writer, a analysis.FinalAnalysis, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return err
		}
		return enc.Close()
	case FormatHuman:
		fallthrough
	default:
		renderHuman(w, a)
		return nil
	}
}

func renderHuman(w io.Writer, a analysis.FinalAnalysis) {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)
	red.Fprintf(w, "🐞 %s\n", a.ErrorType)
	severityColor(a.Severity).Fprintf(w, "📊 SEVERITY: %s", strings.ToUpper(a.Severity))
	fmt.Fprintf(w, "   confidence %s%%", trimFloat(a.Confidence))
	if a.Complexity != nil {
		fmt.Fprintf(w, "   %s", *a.Complexity)
	}
	fmt.Fprint(w, "\n\n")

	white.Fprintln(w, "💡 ROOT CAUSE:")
	fmt.Fprintf(w, "   %s\n\n", a.RootCause)

	white.Fprintln(w, "📄 EXPLANATION:")
	fmt.Fprintf(w, "   %s\n", a.Explanation.English)
	if a.Explanation.Hindi != "" {
		fmt.Fprintf(w, "   %s\n", a.Explanation.Hindi)
	}
	fmt.Fprintln(w)

	green.Fprintln(w, "🚀 SUGGESTED FIX:")
	fmt.Fprintln(w, indent(color.GreenString(a.SuggestedFix.Code), "   "))
	if a.SuggestedFix.Explanation != "" {
		fmt.Fprintf(w, "   Why: %s\n", a.SuggestedFix.Explanation)
	}
	fmt.Fprintln(w)

	cyan.Fprintln(w, "🔀 ALTERNATIVES:")
	for i, alt := range a.Alternatives {
		fmt.Fprintf(w, "   %d. %s\n", i+1, alt.Title)
		fmt.Fprintln(w, indent(color.CyanString(alt.Code), "      "))
		if alt.Explanation != "" {
			fmt.Fprintf(w, "      %s\n", alt.Explanation)
		}
	}
	fmt.Fprintln(w)

	if len(a.VariableSnapshot) > 0 {
		white.Fprintln(w, "🔎 VARIABLES:")
		names := make([]string, 0, len(a.VariableSnapshot))
		for name := range a.VariableSnapshot {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "   %s = %s\n", name, color.YellowString(a.VariableSnapshot[name]))
		}
		fmt.Fprintln(w)
	}

	white.Fprintln(w, "📚 LEARN MORE:")
	for i, r := range a.LearningResources {
		fmt.Fprintf(w, "   %d. %s: %s\n", i+1, r.Title, r.Description)
	}
	fmt.Fprintln(w)

	if a.LearningTip != "" {
		fmt.Fprintf(w, "💡 Tip: %s\n", a.LearningTip)
	}
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func severityColor(severity string) *color.Color {
	switch strings.ToLower(severity) {
	case "critical":
		return color.New(color.FgRed, color.Bold)
	case "warning":
		return color.New(color.FgYellow, color.Bold)
	case "info":
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgWhite)
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func trimFloat(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

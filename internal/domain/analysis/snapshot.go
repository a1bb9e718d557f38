package analysis

import (
	"regexp"
	"strings"
)

var (
	rxScriptAssign = regexp.MustCompile(`(\w+)\s*=\s*([^=\n]+)`)
	rxDeclAssign   = regexp.MustCompile(`(?:let|const|var)\s+(\w+)\s*=\s*([^;\n]+)`)
)

// DeriveSnapshot captures assignment right-hand sides as written in the code.
// It is a textual heuristic: nothing is evaluated, and a repeated name keeps
// its last value. Unsupported languages give an empty map.
func DeriveSnapshot(code, language string) map[string]string {
	var rx *regexp.Regexp
	switch strings.ToLower(language) {
	case "python":
		rx = rxScriptAssign
	case "javascript", "typescript":
		rx = rxDeclAssign
	default:
		return map[string]string{}
	}

	snapshot := make(map[string]string)
	for _, m := range rx.FindAllStringSubmatch(code, -1) {
		snapshot[m[1]] = strings.TrimSpace(m[2])
	}
	return snapshot
}

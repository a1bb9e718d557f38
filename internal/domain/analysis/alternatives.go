package analysis

import "strings"

const alternativeCount = 3

const (
	titleErrorHandling   = "Add Error Handling"
	titleInputValidation = "Add Input Validation"
	titleTypeChecking    = "Add Type Checking"
)

// archetypes are the canned suggestions used to pad missing slots, in order.
var archetypes = [alternativeCount]func(code, language string) Alternative{
	errorHandlingAlternative,
	inputValidationAlternative,
	typeCheckingAlternative,
}

// SynthesizeAlternatives returns exactly 3 alternatives: the existing ones
// first, then archetypes starting at index len(existing).
func SynthesizeAlternatives(code, language string, existing []Alternative) []Alternative {
	out := make([]Alternative, 0, max(len(existing), alternativeCount))
	out = append(out, existing...)
	for len(out) < alternativeCount {
		out = append(out, archetypes[len(out)](code, language))
	}
	return out[:alternativeCount]
}

func errorHandlingAlternative(code, language string) Alternative {
	lines := leadingLines(code, 3)
	var body string
	switch language {
	case "python":
		body = "try:\n    " + strings.Join(lines, "\n    ") + "\nexcept Exception as error:\n    print(error)"
	case "java":
		body = "try {\n  " + strings.Join(lines, "\n  ") + "\n} catch (Exception error) {\n  error.printStackTrace();\n}"
	case "cpp":
		body = "try {\n  " + strings.Join(lines, "\n  ") + "\n} catch (const std::exception& error) {\n  std::cerr << error.what() << std::endl;\n}"
	default:
		body = "try {\n  " + strings.Join(lines, "\n  ") + "\n} catch (error) {\n  console.error(error)\n}"
	}
	return Alternative{
		Title:       titleErrorHandling,
		Code:        body,
		Explanation: "Wrap code in try-catch to handle potential errors gracefully",
	}
}

func inputValidationAlternative(code, language string) Alternative {
	head := strings.Join(leadingLines(code, 2), "\n")
	var guard string
	switch language {
	case "python":
		guard = "# Add validation before processing\nif input is None:\n    raise ValueError('Invalid input')\n"
	case "java":
		guard = "// Add validation before processing\nif (input == null) {\n  throw new IllegalArgumentException(\"Invalid input\");\n}\n"
	default:
		guard = "// Add validation before processing\nif (input === null || input === undefined) {\n  throw new Error('Invalid input')\n}\n"
	}
	return Alternative{
		Title:       titleInputValidation,
		Code:        guard + head,
		Explanation: "Validate inputs before processing to prevent runtime errors",
	}
}

func typeCheckingAlternative(_ string, language string) Alternative {
	var body string
	switch language {
	case "typescript":
		body = "// Use TypeScript types\nfunction processData(data: string[]): void {\n  // Implementation\n}"
	case "python":
		body = "# Add runtime type checking\nif not isinstance(data, list):\n    raise TypeError('Expected list')"
	default:
		body = "// Add runtime type checking\nif (typeof data !== 'object') {\n  throw new TypeError('Expected array')\n}"
	}
	return Alternative{
		Title:       titleTypeChecking,
		Code:        body,
		Explanation: "Add type checking to catch type-related errors early",
	}
}

func leadingLines(code string, n int) []string {
	lines := strings.Split(code, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

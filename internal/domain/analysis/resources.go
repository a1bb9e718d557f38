package analysis

import "strings"

const (
	resourceCount = 3

	defaultResourceLanguage = "javascript"
)

// languageResources never changes at runtime.
var languageResources = map[string][resourceCount]Resource{
	"javascript": {
		{Title: "JavaScript Error Handling", Description: "Learn about try-catch and error handling patterns"},
		{Title: "JavaScript Best Practices", Description: "Modern JavaScript coding standards and patterns"},
		{Title: "Debugging JavaScript", Description: "Tools and techniques for debugging JS code"},
	},
	"typescript": {
		{Title: "TypeScript Type System", Description: "Understanding TypeScript's type checking"},
		{Title: "TypeScript Best Practices", Description: "Writing type-safe TypeScript code"},
		{Title: "TypeScript Error Handling", Description: "Handling errors in TypeScript applications"},
	},
	"python": {
		{Title: "Python Exception Handling", Description: "Learn about Python's try-except blocks"},
		{Title: "Python Best Practices", Description: "PEP 8 and Python coding standards"},
		{Title: "Python Debugging", Description: "Using pdb and debugging tools in Python"},
	},
	"java": {
		{Title: "Java Exception Handling", Description: "Understanding Java's exception hierarchy"},
		{Title: "Java Best Practices", Description: "Writing clean and maintainable Java code"},
		{Title: "Java Debugging", Description: "Using IDE debuggers and logging in Java"},
	},
	"cpp": {
		{Title: "C++ Error Handling", Description: "Exception handling and error codes in C++"},
		{Title: "C++ Best Practices", Description: "Modern C++ coding standards"},
		{Title: "C++ Debugging", Description: "Using GDB and other C++ debugging tools"},
	},
	"c": {
		{Title: "C Error Handling", Description: "Error codes and errno in C programming"},
		{Title: "C Best Practices", Description: "Writing safe and efficient C code"},
		{Title: "C Debugging", Description: "Using GDB and Valgrind for C debugging"},
	},
}

// SynthesizeResources returns exactly 3 learning resources, padding from the
// language table starting at index len(existing). Unknown languages use the
// JavaScript table.
func SynthesizeResources(language, _ string, existing []Resource) []Resource {
	table, ok := languageResources[strings.ToLower(language)]
	if !ok {
		table = languageResources[defaultResourceLanguage]
	}

	out := make([]Resource, 0, max(len(existing), resourceCount))
	out = append(out, existing...)
	for len(out) < resourceCount {
		out = append(out, table[len(out)])
	}
	return out[:resourceCount]
}

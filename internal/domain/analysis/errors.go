package analysis

import "errors"

var (
	// ErrInvalidRequest indicates missing code or language; no model call is made.
	ErrInvalidRequest = errors.New("invalid analysis request")

	// ErrNoJSONFound means the model reply has no {...} span to parse.
	ErrNoJSONFound = errors.New("could not find valid JSON in AI response")

	// ErrMalformedJSON means the candidate still failed to decode after sanitizing.
	ErrMalformedJSON = errors.New("malformed JSON in AI response")
)

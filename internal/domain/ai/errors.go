package ai

import "errors"

// ErrUpstreamUnavailable indicates a transport failure or non-success status from the model provider.
var ErrUpstreamUnavailable = errors.New("ai provider unavailable")

// ErrEmptyResponse indicates the provider answered successfully but without any text.
var ErrEmptyResponse = errors.New("no response from AI provider")

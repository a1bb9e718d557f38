package ai

import "context"

// Client sends a prompt to a text model and returns its raw reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

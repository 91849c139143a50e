package ports

import "context"

// TokenSource yields the current bearer token for the identity provider.
// Tokens are short-lived; callers must fetch one per request and never
// cache across calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

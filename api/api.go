package api

import (
	"context"
)

// Requester defines the verbs the What-to-Watch API is consumed through
type Requester interface {
	// Get fetches path and decodes the JSON response into out
	Get(ctx context.Context, path string, out any) error

	// Post sends body as JSON to path and decodes the response into out.
	// Either body or out may be nil.
	Post(ctx context.Context, path string, body, out any) error

	// Delete issues a DELETE request to path
	Delete(ctx context.Context, path string) error
}

// TokenSource supplies the token attached to outgoing requests
type TokenSource interface {
	Read() string
}

// Get fetches path and returns the decoded body as T
func Get[T any](ctx context.Context, r Requester, path string) (T, error) {
	var out T
	err := r.Get(ctx, path, &out)
	return out, err
}

// Post sends body to path and returns the decoded response as T
func Post[T any](ctx context.Context, r Requester, path string, body any) (T, error) {
	var out T
	err := r.Post(ctx, path, body, &out)
	return out, err
}

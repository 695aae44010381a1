package storybook

import "context"

// Backend is the durable key-value area the story collection lives in.
// Implementations live in the store package.
type Backend interface {
	// Get returns the text stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the text stored under key
	Set(ctx context.Context, key, value string) error
}

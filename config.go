package storybook

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

// IDStrategy defines how new story identifiers are chosen
type IDStrategy string

const (
	// IDClock uses the current time in milliseconds, unchanged
	IDClock IDStrategy = "CLOCK"
	// IDMonotonic uses max(now in milliseconds, last persisted id + 1)
	IDMonotonic IDStrategy = "MONOTONIC"
)

// StoreConfig holds store-level configuration
type StoreConfig struct {
	Key        string
	IDStrategy IDStrategy
}

// DefaultStoreConfig provides the defaults matching the persisted layout
var DefaultStoreConfig = StoreConfig{
	Key:        StorageKey,
	IDStrategy: IDClock,
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLogger sets a custom logger for the store
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = ComponentLogger(logger, "story_store")
	}
}

// WithClock sets the clock used for ids and creation times
func WithClock(clock clockwork.Clock) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithRandom sets the source of random indexes. intn must return a
// uniformly distributed value in [0, n).
func WithRandom(intn func(n int) int) StoreOption {
	return func(s *Store) {
		s.intn = intn
	}
}

// WithKey overrides the durable key
func WithKey(key string) StoreOption {
	return func(s *Store) {
		s.config.Key = key
	}
}

// WithMonotonicIDs switches between IDMonotonic and IDClock
func WithMonotonicIDs(monotonic bool) StoreOption {
	return func(s *Store) {
		if monotonic {
			s.config.IDStrategy = IDMonotonic
		} else {
			s.config.IDStrategy = IDClock
		}
	}
}

// WithConfig sets the whole store configuration
func WithConfig(config StoreConfig) StoreOption {
	return func(s *Store) {
		s.config = config
	}
}

func defaultIntn(n int) int {
	return frand.Intn(n)
}

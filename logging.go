package storybook

import (
	"time"

	"github.com/rs/zerolog"
)

// Log event names
const (
	// Store events
	EventStoriesReadFailed = "stories_read_failed"
	EventStorySaved        = "story_saved"
	EventStorySaveFailed   = "story_save_failed"
	EventFallbackServed    = "fallback_served"

	// Page assembly events
	EventFragmentLoaded     = "fragment_loaded"
	EventFragmentLoadFailed = "fragment_load_failed"

	// Transport events
	EventHTTPRequest = "http_request"
)

// LogStoriesReadFailed logs a read or decode failure that degraded to an empty collection
func LogStoriesReadFailed(logger zerolog.Logger, key, operation string, err error) {
	logger.Error().
		Str("event", EventStoriesReadFailed).
		Str("key", key).
		Str("operation", operation).
		Err(err).
		Msg("Error reading stories")
}

// LogStorySaved logs a durably saved story
func LogStorySaved(logger zerolog.Logger, key string, storyID int64, total int) {
	logger.Info().
		Str("event", EventStorySaved).
		Str("key", key).
		Int64("story_id", storyID).
		Int("total", total).
		Msg("Story saved")
}

// LogStorySaveFailed logs a story that could not be persisted
func LogStorySaveFailed(logger zerolog.Logger, key string, storyID int64, err error) {
	logger.Error().
		Str("event", EventStorySaveFailed).
		Str("key", key).
		Int64("story_id", storyID).
		Err(err).
		Msg("Error saving story")
}

// LogFallbackServed logs when default stories stand in for an empty collection
func LogFallbackServed(logger zerolog.Logger, key string, count int) {
	logger.Debug().
		Str("event", EventFallbackServed).
		Str("key", key).
		Int("count", count).
		Msg("No stored stories, serving defaults")
}

// LogFragmentLoaded logs a fragment injected into a page region
func LogFragmentLoaded(logger zerolog.Logger, regionID, path string, size int) {
	logger.Debug().
		Str("event", EventFragmentLoaded).
		Str("region", regionID).
		Str("path", path).
		Int("size", size).
		Msg("Fragment loaded")
}

// LogFragmentLoadFailed logs a fragment that could not be fetched or injected
func LogFragmentLoadFailed(logger zerolog.Logger, regionID, path string, err error) {
	logger.Error().
		Str("event", EventFragmentLoadFailed).
		Str("region", regionID).
		Str("path", path).
		Err(err).
		Msg("Error loading component")
}

// ComponentLogger creates a logger enriched with the component name
func ComponentLogger(baseLogger zerolog.Logger, component string) zerolog.Logger {
	return baseLogger.With().
		Str("component", component).
		Logger()
}

// LogHTTPRequest logs one served request
func LogHTTPRequest(logger zerolog.Logger, requestID, method, path string, status int, duration time.Duration) {
	logger.Info().
		Str("event", EventHTTPRequest).
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("duration", duration).
		Msg("HTTP request")
}

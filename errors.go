package storybook

import (
	"errors"
	"fmt"
	"time"
)

// Error codes
const (
	ErrCodePersistence   = "PERSISTENCE_FAILED"
	ErrCodeSerialization = "SERIALIZATION_FAILED"
)

// StoryError represents a failure the caller must see, such as a story that
// was not durably saved
type StoryError struct {
	Message   string                 `json:"message"`
	Code      string                 `json:"code"`
	Key       string                 `json:"key,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`

	Err error `json:"-"`
}

// Error implements the error interface
func (e *StoryError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Key != "" {
		msg = fmt.Sprintf("%s (key: %s)", msg, e.Key)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *StoryError) Unwrap() error {
	return e.Err
}

// NewStoryError creates a new story error
func NewStoryError(code, message string) *StoryError {
	return &StoryError{
		Message:   message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// WithKey records the durable key involved
func (e *StoryError) WithKey(key string) *StoryError {
	e.Key = key
	return e
}

// WithCause wraps the underlying error
func (e *StoryError) WithCause(err error) *StoryError {
	e.Err = err
	return e
}

// WithDetails adds details to the error
func (e *StoryError) WithDetails(details map[string]interface{}) *StoryError {
	e.Details = details
	return e
}

// toStoryError converts a Go error to a story error with the given code
func toStoryError(err error, code string) *StoryError {
	if err == nil {
		return nil
	}

	var se *StoryError
	if errors.As(err, &se) {
		return se
	}

	return &StoryError{
		Message:   err.Error(),
		Code:      code,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// IsPersistenceError reports whether err means a story was not durably saved
func IsPersistenceError(err error) bool {
	return hasCode(err, ErrCodePersistence)
}

// IsSerializationError reports whether err came from encoding the collection
func IsSerializationError(err error) bool {
	return hasCode(err, ErrCodeSerialization)
}

func hasCode(err error, code string) bool {
	var se *StoryError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

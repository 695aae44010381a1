package storybook

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// StorageKey is the durable key holding the whole story collection
const StorageKey = "book-of-experience-stories"

// TimestampLayout is the ISO-8601 layout stories are written with (millisecond precision, UTC)
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Story is one entry in the book, either user-authored or a fallback default
type Story struct {
	// Identity
	ID int64 `json:"id"`

	// Author
	Name    string `json:"name"`
	Country string `json:"country"`
	Age     Age    `json:"age"`
	Sex     string `json:"sex"`

	// Content
	Experience string `json:"experience"`
	Fear       string `json:"fear"`

	// Metadata
	CreatedAt Timestamp `json:"createdAt"`
	IsDefault bool      `json:"isDefault,omitempty"` // only set on fallback stories
}

// StoryInput is the caller-supplied part of a new story. Age accepts any
// JSON scalar and is coerced when the story is saved.
type StoryInput struct {
	Name       string `json:"name"`
	Country    string `json:"country"`
	Age        any    `json:"age"`
	Sex        string `json:"sex"`
	Experience string `json:"experience"`
	Fear       string `json:"fear"`
}

// Age is an integer age or the not-a-number sentinel
type Age struct {
	Value int64
	Valid bool
}

// AgeOf returns a valid age
func AgeOf(v int64) Age {
	return Age{Value: v, Valid: true}
}

// NaNAge is the sentinel produced by failed coercion
var NaNAge = Age{}

// String returns the decimal age, or "NaN" for the sentinel
func (a Age) String() string {
	if !a.Valid {
		return "NaN"
	}
	return strconv.FormatInt(a.Value, 10)
}

// MarshalJSON writes the sentinel as null
func (a Age) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(a.Value, 10)), nil
}

// UnmarshalJSON never fails: anything that does not coerce becomes the sentinel
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = NaNAge
		return nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		*a = NaNAge
		return nil
	}
	*a = ParseAge(v)
	return nil
}

// Timestamp is a creation time serialized as ISO-8601 text
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, normalized to UTC
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// MustParseTimestamp parses RFC 3339 text and panics on failure. Used for constants.
func MustParseTimestamp(s string) Timestamp {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return NewTimestamp(t)
}

// String formats the timestamp the way it is persisted
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON writes the persisted ISO-8601 form. A zero timestamp has no
// date to write and is encoded as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts any RFC 3339 text. Unparseable values decode to the
// zero timestamp so one bad record does not hide the whole collection.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = Timestamp{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		*t = Timestamp{}
		return nil
	}
	*t = NewTimestamp(parsed)
	return nil
}

package storybook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Store owns the persisted story collection. Reads never fail: a missing or
// unreadable collection is treated as empty and the fallback stories take
// its place. SaveStory is the only operation that mutates the backend.
type Store struct {
	backend Backend
	logger  zerolog.Logger
	clock   clockwork.Clock
	intn    func(n int) int
	config  StoreConfig

	// serializes the read-modify-write in SaveStory
	writeMu sync.Mutex
}

// NewStore creates a story store over backend.
// If no logger is provided, a default stdout logger with Info level is used.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	defaultLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)

	s := &Store{
		backend: backend,
		logger:  ComponentLogger(defaultLogger, "story_store"),
		clock:   clockwork.NewRealClock(),
		intn:    defaultIntn,
		config:  DefaultStoreConfig,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Key returns the durable key the collection is stored under
func (s *Store) Key() string {
	return s.config.Key
}

// GetStories returns the persisted stories in creation order
func (s *Store) GetStories(ctx context.Context) []Story {
	stories, err := s.load(ctx)
	if err != nil {
		LogStoriesReadFailed(s.logger, s.config.Key, "get_stories", err)
		return []Story{}
	}
	return stories
}

// GetStoriesWithDefault returns the persisted stories, or the fallback
// stories when none are persisted
func (s *Store) GetStoriesWithDefault(ctx context.Context) []Story {
	stories := s.GetStories(ctx)
	if len(stories) == 0 {
		LogFallbackServed(s.logger, s.config.Key, len(defaultStories))
		return DefaultStories()
	}
	return stories
}

// SaveStory creates a story from input and appends it to the collection.
// Records already persisted are written back exactly as read. A failed
// backend read aborts the save so the collection is never replaced by a
// partial view. The returned error is a *StoryError; the story was not saved
// when it is non-nil.
func (s *Store) SaveStory(ctx context.Context, input StoryInput) (Story, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	existing, err := s.loadRaw(ctx)
	if err != nil {
		serr := NewStoryError(ErrCodePersistence, "failed to read stories before save").
			WithKey(s.config.Key).
			WithCause(err)
		LogStoriesReadFailed(s.logger, s.config.Key, "save_story", serr)
		return Story{}, serr
	}

	now := s.clock.Now().Truncate(time.Millisecond)
	story := Story{
		ID:         s.nextID(now, existingIDs(existing)),
		Name:       input.Name,
		Country:    input.Country,
		Age:        ParseAge(input.Age),
		Sex:        input.Sex,
		Experience: input.Experience,
		Fear:       input.Fear,
		CreatedAt:  NewTimestamp(now),
	}

	encoded, err := json.Marshal(story)
	if err != nil {
		serr := toStoryError(err, ErrCodeSerialization).WithKey(s.config.Key)
		LogStorySaveFailed(s.logger, s.config.Key, story.ID, serr)
		return Story{}, serr
	}

	total := len(existing) + 1
	if err := s.backend.Set(ctx, s.config.Key, appendElement(existing, encoded)); err != nil {
		serr := NewStoryError(ErrCodePersistence, "failed to persist story").
			WithKey(s.config.Key).
			WithCause(err).
			WithDetails(map[string]interface{}{
				"story_id": story.ID,
				"stories":  total,
			})
		LogStorySaveFailed(s.logger, s.config.Key, story.ID, serr)
		return Story{}, serr
	}

	LogStorySaved(s.logger, s.config.Key, story.ID, total)
	return story, nil
}

// GetStoryByID returns the story with the given id. ok is false when there is none.
func (s *Store) GetStoryByID(ctx context.Context, id int64) (story Story, ok bool) {
	for _, st := range s.GetStoriesWithDefault(ctx) {
		if st.ID == id {
			return st, true
		}
	}
	return Story{}, false
}

// GetStoryCount returns the number of stories visible to readers
func (s *Store) GetStoryCount(ctx context.Context) int {
	return len(s.GetStoriesWithDefault(ctx))
}

// GetStoryByIndex returns the story at a zero-based position
func (s *Store) GetStoryByIndex(ctx context.Context, index int) (story Story, ok bool) {
	stories := s.GetStoriesWithDefault(ctx)
	if index < 0 || index >= len(stories) {
		return Story{}, false
	}
	return stories[index], true
}

// GetLatestStory returns the most recently appended story
func (s *Store) GetLatestStory(ctx context.Context) (story Story, ok bool) {
	stories := s.GetStoriesWithDefault(ctx)
	if len(stories) == 0 {
		return Story{}, false
	}
	return stories[len(stories)-1], true
}

// GetRandomStory returns a uniformly chosen story
func (s *Store) GetRandomStory(ctx context.Context) (story Story, ok bool) {
	stories := s.GetStoriesWithDefault(ctx)
	if len(stories) == 0 {
		return Story{}, false
	}
	return stories[s.intn(len(stories))], true
}

func (s *Store) load(ctx context.Context) ([]Story, error) {
	raw, ok, err := s.backend.Get(ctx, s.config.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read stories: %w", err)
	}
	if !ok || raw == "" {
		return []Story{}, nil
	}

	var stories []Story
	if err := json.Unmarshal([]byte(raw), &stories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stories: %w", err)
	}
	if stories == nil {
		// a persisted "null"
		return nil, errors.New("stored stories are not an array")
	}
	return stories, nil
}

// loadRaw returns the persisted elements undecoded. Only a backend failure
// is an error; a value that is not a JSON array reads as empty and is
// replaced by the next write.
func (s *Store) loadRaw(ctx context.Context) ([]json.RawMessage, error) {
	raw, ok, err := s.backend.Get(ctx, s.config.Key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		LogStoriesReadFailed(s.logger, s.config.Key, "save_story", fmt.Errorf("failed to unmarshal stories: %w", err))
		return nil, nil
	}
	if elems == nil {
		LogStoriesReadFailed(s.logger, s.config.Key, "save_story", errors.New("stored stories are not an array"))
		return nil, nil
	}
	return elems, nil
}

// existingIDs extracts the ids of persisted elements, skipping any without
// an integer id
func existingIDs(elems []json.RawMessage) []int64 {
	ids := make([]int64, 0, len(elems))
	for _, elem := range elems {
		var rec struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(elem, &rec); err == nil {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

// appendElement renders elems followed by next as a JSON array
func appendElement(elems []json.RawMessage, next []byte) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for _, elem := range elems {
		buf.Write(elem)
		buf.WriteByte(',')
	}
	buf.Write(next)
	buf.WriteByte(']')
	return buf.String()
}

func (s *Store) nextID(now time.Time, existing []int64) int64 {
	id := now.UnixMilli()
	if s.config.IDStrategy != IDMonotonic {
		return id
	}
	for _, prev := range existing {
		if prev >= id {
			id = prev + 1
		}
	}
	return id
}

// Package server exposes the story store over HTTP and serves pages
// assembled from shared fragments.
package server

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sicko7947/storybook"
	"github.com/sicko7947/storybook/fragment"
)

// HeaderRequestID carries the per-request id
const HeaderRequestID = "X-Request-ID"

var pageName = regexp.MustCompile(`^[A-Za-z0-9_-]+\.html$`)

// StoryResponse is a story plus its rendered attribution line
type StoryResponse struct {
	storybook.Story
	Author string `json:"author"`
}

func newStoryResponse(story storybook.Story) StoryResponse {
	return StoryResponse{Story: story, Author: storybook.FormatAuthor(story)}
}

// Server wires the story store and the fragment loader into a fiber app
type Server struct {
	cfg     Config
	stories *storybook.Store
	loader  *fragment.Loader
	logger  zerolog.Logger
}

// New creates a server
func New(cfg Config, stories *storybook.Store, loader *fragment.Loader, logger zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		stories: stories,
		loader:  loader,
		logger:  storybook.ComponentLogger(logger, "http"),
	}
}

// App builds the fiber app with all routes registered
func (s *Server) App() *fiber.App {
	app := fiber.New()
	app.Use(s.requestLogger)
	s.registerRoutes(app)
	return app
}

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes(app *fiber.App) {
	// Health check endpoint
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "storybook",
		})
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	stories := v1.Group("/stories")
	stories.Get("/", s.handleListStories)
	stories.Post("/", s.handleSaveStory)
	stories.Get("/count", s.handleCount)
	stories.Get("/latest", s.handleLatest)
	stories.Get("/random", s.handleRandom)
	stories.Get("/index/:index", s.handleByIndex)
	stories.Get("/:id", s.handleByID)

	// Shared fragments
	app.Get("/components*", static.New(s.cfg.ComponentsDir))

	// Pages
	app.Get("/", s.handlePage)
	app.Get("/:page", s.handlePage)
}

func (s *Server) requestLogger(c fiber.Ctx) error {
	start := time.Now()

	requestID := c.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(HeaderRequestID, requestID)

	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		// fiber's error handler answers 500 unless the error carries a code
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	storybook.LogHTTPRequest(s.logger, requestID, c.Method(), c.Path(), status, time.Since(start))
	return err
}

// handleListStories returns stories, with defaults unless persisted=true
func (s *Server) handleListStories(c fiber.Ctx) error {
	var stories []storybook.Story
	if c.Query("persisted") == "true" {
		stories = s.stories.GetStories(c.Context())
	} else {
		stories = s.stories.GetStoriesWithDefault(c.Context())
	}

	out := make([]StoryResponse, len(stories))
	for i, st := range stories {
		out[i] = newStoryResponse(st)
	}
	return c.JSON(out)
}

// handleSaveStory creates a new story
func (s *Server) handleSaveStory(c fiber.Ctx) error {
	var input storybook.StoryInput
	if err := c.Bind().JSON(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	story, err := s.stories.SaveStory(c.Context(), input)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save story")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save story",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(newStoryResponse(story))
}

func (s *Server) handleCount(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"count": s.stories.GetStoryCount(c.Context()),
	})
}

func (s *Server) handleLatest(c fiber.Ctx) error {
	story, ok := s.stories.GetLatestStory(c.Context())
	return s.storyOrNotFound(c, story, ok)
}

func (s *Server) handleRandom(c fiber.Ctx) error {
	story, ok := s.stories.GetRandomStory(c.Context())
	return s.storyOrNotFound(c, story, ok)
}

func (s *Server) handleByIndex(c fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Index must be an integer",
		})
	}

	story, ok := s.stories.GetStoryByIndex(c.Context(), index)
	return s.storyOrNotFound(c, story, ok)
}

func (s *Server) handleByID(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Story id must be an integer",
		})
	}

	story, ok := s.stories.GetStoryByID(c.Context(), id)
	return s.storyOrNotFound(c, story, ok)
}

func (s *Server) storyOrNotFound(c fiber.Ctx, story storybook.Story, ok bool) error {
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Story not found",
		})
	}
	return c.JSON(newStoryResponse(story))
}

// handlePage serves a page with the shared header and footer injected
func (s *Server) handlePage(c fiber.Ctx) error {
	name := c.Params("page")
	if name == "" {
		name = "index.html"
	}
	if !pageName.MatchString(name) {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}

	page, err := os.ReadFile(filepath.Join(s.cfg.PagesDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}
	if err != nil {
		s.logger.Error().Err(err).Str("page", name).Msg("Failed to read page")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	out := s.loader.Render(c.Context(), page, fragment.DefaultRegions)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(out)
}

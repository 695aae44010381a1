// Package fragment assembles pages from shared HTML fragments: each
// fragment is fetched over HTTP and injected verbatim into the page element
// whose id names its region.
package fragment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/rs/zerolog"
	"github.com/sicko7947/storybook"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// ErrRegionNotFound is returned by Inject when no element carries the region id
var ErrRegionNotFound = errors.New("region not found")

// Region pairs a page element id with the resource injected into it
type Region struct {
	ID   string
	Path string
}

// DefaultRegions are assembled into every page
var DefaultRegions = []Region{
	{ID: "header", Path: "components/header.html"},
	{ID: "footer", Path: "components/footer.html"},
}

// Loader fetches fragments relative to a base URL
type Loader struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for fetches
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.client = client
	}
}

// WithTimeout bounds one Render call; zero means no bound beyond ctx
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithLogger sets a custom logger for the loader
func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = storybook.ComponentLogger(logger, "fragment_loader")
	}
}

// NewLoader creates a loader resolving fragment paths against baseURL
func NewLoader(baseURL string, opts ...LoaderOption) *Loader {
	defaultLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	l := &Loader{
		baseURL: baseURL,
		client:  http.DefaultClient,
		logger:  storybook.ComponentLogger(defaultLogger, "fragment_loader"),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Fetch retrieves the text of the resource at path. Non-2xx responses are errors.
func (l *Loader) Fetch(ctx context.Context, path string) (string, error) {
	var body string
	err := requests.
		URL(l.baseURL).
		Path(strings.TrimPrefix(path, "/")).
		Client(l.client).
		ToString(&body).
		Fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", path, err)
	}
	return body, nil
}

// Render fetches every region concurrently and injects the fragments into
// page. A region whose fragment cannot be fetched or injected is logged and
// left unchanged; Render itself never fails.
func (l *Loader) Render(ctx context.Context, page []byte, regions []Region) []byte {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	contents := make([]*string, len(regions))

	var g errgroup.Group
	for i, region := range regions {
		g.Go(func() error {
			content, err := l.Fetch(ctx, region.Path)
			if err != nil {
				storybook.LogFragmentLoadFailed(l.logger, region.ID, region.Path, err)
				return nil
			}
			contents[i] = &content
			return nil
		})
	}
	_ = g.Wait()

	out := page
	for i, region := range regions {
		if contents[i] == nil {
			continue
		}
		injected, err := Inject(out, region.ID, *contents[i])
		if err != nil {
			storybook.LogFragmentLoadFailed(l.logger, region.ID, region.Path, err)
			continue
		}
		out = injected
		storybook.LogFragmentLoaded(l.logger, region.ID, region.Path, len(*contents[i]))
	}
	return out
}

// Inject replaces the children of the element with id regionID by content
func Inject(page []byte, regionID, content string) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	target := findByID(doc, regionID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}

	nodes, err := html.ParseFragment(strings.NewReader(content), target)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	for c := target.FirstChild; c != nil; {
		next := c.NextSibling
		target.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		target.AppendChild(n)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Namespace == "" && attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

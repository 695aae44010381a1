package fragment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html><head><title>Book</title></head>
<body>
<div id="header">loading</div>
<main><p>Stories</p></main>
<div id="footer"></div>
</body></html>`

func newFragmentServer(t *testing.T, files map[string]string) (*httptest.Server, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &hits
}

func TestInject(t *testing.T) {
	out, err := Inject([]byte(testPage), "header", `<nav><a href="/">Home</a></nav>`)
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, `<div id="header"><nav><a href="/">Home</a></nav></div>`)
	assert.NotContains(t, page, "loading")
	assert.Contains(t, page, "<p>Stories</p>")
}

func TestInject_TextIsNotTemplated(t *testing.T) {
	out, err := Inject([]byte(testPage), "footer", `{{ .Year }} &copy; Book`)
	require.NoError(t, err)

	assert.Contains(t, string(out), "{{ .Year }} © Book")
}

func TestInject_RegionNotFound(t *testing.T) {
	_, err := Inject([]byte(testPage), "sidebar", "<p>x</p>")
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestLoader_Fetch(t *testing.T) {
	srv, _ := newFragmentServer(t, map[string]string{
		"/components/header.html": "<nav>menu</nav>",
	})
	loader := NewLoader(srv.URL, WithLogger(zerolog.Nop()))

	body, err := loader.Fetch(context.Background(), "components/header.html")
	require.NoError(t, err)
	assert.Equal(t, "<nav>menu</nav>", body)
}

func TestLoader_Fetch_NotFound(t *testing.T) {
	srv, _ := newFragmentServer(t, map[string]string{})
	loader := NewLoader(srv.URL, WithLogger(zerolog.Nop()))

	_, err := loader.Fetch(context.Background(), "components/header.html")
	assert.Error(t, err)
}

func TestLoader_Render(t *testing.T) {
	srv, hits := newFragmentServer(t, map[string]string{
		"/components/header.html": "<nav>menu</nav>",
		"/components/footer.html": "<small>footer text</small>",
	})
	loader := NewLoader(srv.URL, WithLogger(zerolog.Nop()))

	out := string(loader.Render(context.Background(), []byte(testPage), DefaultRegions))

	assert.Contains(t, out, `<div id="header"><nav>menu</nav></div>`)
	assert.Contains(t, out, `<div id="footer"><small>footer text</small></div>`)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestLoader_Render_FailedRegionUnchanged(t *testing.T) {
	srv, _ := newFragmentServer(t, map[string]string{
		"/components/footer.html": "<small>footer text</small>",
	})
	loader := NewLoader(srv.URL, WithLogger(zerolog.Nop()))

	out := string(loader.Render(context.Background(), []byte(testPage), DefaultRegions))

	assert.Contains(t, out, `<div id="header">loading</div>`)
	assert.Contains(t, out, `<div id="footer"><small>footer text</small></div>`)
}

func TestLoader_Render_MissingRegionSkipped(t *testing.T) {
	srv, _ := newFragmentServer(t, map[string]string{
		"/components/aside.html": "<aside>x</aside>",
	})
	loader := NewLoader(srv.URL, WithLogger(zerolog.Nop()))

	out := string(loader.Render(context.Background(), []byte(testPage), []Region{{ID: "aside", Path: "components/aside.html"}}))

	assert.NotContains(t, out, "<aside>")
	assert.Contains(t, out, "<p>Stories</p>")
}

func TestLoader_Render_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	loader := NewLoader(srv.URL, WithLogger(zerolog.Nop()), WithTimeout(50*time.Millisecond))

	start := time.Now()
	out := string(loader.Render(context.Background(), []byte(testPage), DefaultRegions))

	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, out, `<div id="header">loading</div>`)
}

func TestNewLoader_TrailingSlash(t *testing.T) {
	loader := NewLoader("http://example.test/site")
	assert.True(t, strings.HasSuffix(loader.baseURL, "/"))
}

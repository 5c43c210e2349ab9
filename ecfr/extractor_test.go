package ecfr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"compliance/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestExtractor(baseURL string, timeout time.Duration) *Extractor {
	return NewExtractor(Config{
		BaseURL:     baseURL,
		Timeout:     timeout,
		UserAgent:   "compliance-test",
		Concurrency: 3,
	}, quietLogger)
}

func TestPartURL(t *testing.T) {
	e := newTestExtractor("https://www.ecfr.gov/", time.Second)

	assert.Equal(t,
		"https://www.ecfr.gov/current/title-49/subtitle-B/chapter-I/subchapter-D/part-192",
		e.PartURL(types.Part192))
}

func TestFetchPartSummary_Success(t *testing.T) {
	fixture, err := os.ReadFile("testdata/part192.html")
	require.NoError(t, err)

	var gotPath, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(fixture)
	}))
	defer ts.Close()

	e := newTestExtractor(ts.URL, time.Second)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	summary := e.FetchPartSummary(context.Background(), types.Part192)

	require.False(t, summary.Failed(), summary.Error)
	assert.Equal(t, "/current/title-49/subtitle-B/chapter-I/subchapter-D/part-192", gotPath)
	assert.Equal(t, "compliance-test", gotUA)
	assert.Equal(t, types.Part192, summary.Part)
	assert.Equal(t, ts.URL+gotPath, summary.FullURL)
	assert.Len(t, summary.Sections, MaxSummarySections)
	assert.Equal(t, "p-192.9", summary.Sections[4].ID)
	require.NotNil(t, summary.FetchedAt)
	assert.Equal(t, fixed, *summary.FetchedAt)
	assert.True(t, strings.HasPrefix(summary.Summary, "Overview for PART 192"))
	assert.True(t, strings.HasSuffix(summary.Summary,
		"Key sections include § 192.1 What is the scope of this part?, § 192.3 Definitions., § 192.5 Class locations.."))
	for _, s := range summary.Sections {
		assert.LessOrEqual(t, utf8.RuneCountInString(s.Content), MaxContentLength)
	}
}

func TestFetchPartSummary_NoSections(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html><body><p>Maintenance</p></body></html>")
	}))
	defer ts.Close()

	e := newTestExtractor(ts.URL, time.Second)
	summary := e.FetchPartSummary(context.Background(), types.Part191)

	require.False(t, summary.Failed())
	assert.Equal(t, "Part 191", summary.Title)
	assert.Equal(t, "Fetched Part 191 - Full content available at "+e.PartURL(types.Part191), summary.Summary)
	assert.NotNil(t, summary.Sections)
	assert.Empty(t, summary.Sections)
}

func TestFetchPartSummary_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	e := newTestExtractor(ts.URL, 20*time.Millisecond)
	summary := e.FetchPartSummary(context.Background(), types.Part195)

	require.True(t, summary.Failed())
	assert.True(t, strings.HasPrefix(summary.Error, "Failed to fetch: "))
	assert.Equal(t, e.PartURL(types.Part195), summary.FallbackURL)
	assert.Empty(t, summary.Sections)
	assert.Nil(t, summary.FetchedAt)
}

func TestFetchPartSummary_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	e := newTestExtractor(ts.URL, time.Second)
	summary := e.FetchPartSummary(context.Background(), types.Part192)

	require.True(t, summary.Failed())
	assert.Contains(t, summary.Error, "503")
}

func TestFetchPartSummary_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	e := newTestExtractor(url, time.Second)
	summary := e.FetchPartSummary(context.Background(), types.Part191)

	require.True(t, summary.Failed())
	assert.Equal(t, e.PartURL(types.Part191), summary.FallbackURL)
}

type failingParser struct{}

func (failingParser) Parse(io.Reader) (*Document, error) {
	return nil, errors.New("unexpected markup")
}

type staticFetcher []byte

func (f staticFetcher) Fetch(context.Context, string) ([]byte, error) {
	return f, nil
}

func TestFetchPartSummary_ParserError(t *testing.T) {
	e := NewExtractorWith(Config{BaseURL: "https://example.test"}, staticFetcher("<html/>"), failingParser{}, quietLogger)

	summary := e.FetchPartSummary(context.Background(), types.Part192)

	require.True(t, summary.Failed())
	assert.Equal(t, "Failed to fetch: unexpected markup", summary.Error)
}

func TestFetchAll_IsolatesFailures(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if strings.HasSuffix(r.URL.Path, "part-192") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `<h1>Part</h1><h2 id="x">§ 1 Scope</h2><p>Applies.</p>`)
	}))
	defer ts.Close()

	e := newTestExtractor(ts.URL, time.Second)
	got := e.FetchAll(context.Background(), []types.Part{types.Part195, types.Part192, types.Part191})

	require.Len(t, got, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, types.Part195, got[0].Part)
	assert.False(t, got[0].Failed())
	assert.Equal(t, types.Part192, got[1].Part)
	assert.True(t, got[1].Failed())
	assert.Equal(t, types.Part191, got[2].Part)
	assert.Len(t, got[2].Sections, 1)
}

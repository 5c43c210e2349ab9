package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"compliance/config"
	"compliance/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const partPage = `<html><body>
<h1>PART %s</h1>
<h4 id="p-1">§ %s.1 Scope.</h4><p>This part prescribes requirements.</p>
<h4 id="p-3">§ %s.3 Definitions.</h4><p>As used in this part.</p>
</body></html>`

func newTestServer(t *testing.T, ecfrURL string) *Server {
	t.Helper()
	cfg := config.Config{
		ServerAddr:       ":0",
		ECFRBaseURL:      ecfrURL,
		ECFRTimeout:      time.Second,
		ECFRUserAgent:    "compliance-test",
		FetchConcurrency: 2,
		CORSAllowOrigins: "*",
	}
	return NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func fakeECFR(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		part := r.URL.Path[strings.LastIndex(r.URL.Path, "-")+1:]
		if part == "195" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, strings.ReplaceAll(partPage, "%s", part))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, s *Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestSelection_FetchesEachPart(t *testing.T) {
	var hits int32
	s := newTestServer(t, fakeECFR(t, &hits).URL)

	for _, path := range []string{"/api/selection", "/api/v1/selection"} {
		resp, raw := post(t, s, path, `{"selectedOptions":[1,2,3]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		var out types.SelectionResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, []types.Part{"191", "192", "195"}, out.SelectedParts)
		require.Len(t, out.Data, 3)
		assert.Equal(t, 4, out.TotalSections)

		assert.Equal(t, "PART 191", out.Data[0].Title)
		assert.Equal(t, "Overview for PART 192: Key sections include § 192.1 Scope., § 192.3 Definitions..", out.Data[1].Summary)
		assert.True(t, out.Data[2].Failed())
		assert.Contains(t, out.Data[2].Error, "502")
		assert.True(t, strings.HasSuffix(out.Data[2].FallbackURL, "/part-195"))
	}
	assert.Equal(t, int32(6), atomic.LoadInt32(&hits))
}

func TestSelection_EmptyDoesNotFetch(t *testing.T) {
	var hits int32
	s := newTestServer(t, fakeECFR(t, &hits).URL)

	resp, raw := post(t, s, "/api/selection", `{"selectedOptions":[]}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), types.MsgSelectionRequired)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestProfile_DoesNotFetch(t *testing.T) {
	var hits int32
	s := newTestServer(t, fakeECFR(t, &hits).URL)

	resp, raw := post(t, s, "/api/v1/profile",
		`{"selectedParts":["192"],"profile":{"pipelineType":"Distribution","locationClass":"N/A","diameter":4,"maopMop":60,"impStatus":"N/A"}}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out types.ProfileResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.ApplicableSections, 1)
	assert.Empty(t, out.ApplicableSections[0].Sections)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestCORSPreflight(t *testing.T) {
	var hits int32
	s := newTestServer(t, fakeECFR(t, &hits).URL)

	req := httptest.NewRequest(http.MethodOptions, "/api/selection", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

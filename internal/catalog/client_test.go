package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonateapp/resonate-server/internal/config"
	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
)

func newTestClient(t *testing.T, upstream *httptest.Server, timeout time.Duration) *Client {
	t.Helper()
	c, err := NewClient(config.CatalogConfig{
		BaseURL:    upstream.URL,
		Timeout:    timeout,
		RequestsPS: 1000,
		Burst:      1000,
	}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return c
}

func testCredential() *Credential {
	return &Credential{Token: "test-token", Expiry: time.Now().Add(time.Hour)}
}

func TestClient_SearchSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "tycho", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":{"items":[{"id":"t1","name":"Awake"}],"total":1}}`))
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream, 5*time.Second)

	results, err := c.Search(context.Background(), testCredential(), "tycho", 0)
	require.NoError(t, err)
	require.Len(t, results.Tracks.Items, 1)
	assert.Equal(t, "Awake", results.Tracks.Items[0].Name)
}

func TestClient_SearchUpstreamRejected(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"status":403,"message":"Invalid access token"}}`))
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream, 5*time.Second)

	_, err := c.Search(context.Background(), testCredential(), "tycho", 10)
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindUpstreamRejected, ce.Kind)
	assert.Equal(t, http.StatusForbidden, ce.UpstreamStatus)
	assert.Equal(t, http.StatusBadGateway, ce.HTTPStatus())
	// The upstream's own status and message are both preserved.
	assert.Equal(t, "Invalid access token", ce.Message)
	assert.Contains(t, ce.PublicMessage(), "403")
	assert.Contains(t, ce.PublicMessage(), "Invalid access token")
}

func TestClient_SearchUpstreamRejectedOpaqueBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusForbidden)
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream, 5*time.Second)

	_, err := c.Search(context.Background(), testCredential(), "tycho", 10)
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindUpstreamRejected, ce.Kind)
	assert.Empty(t, ce.Message)
	// Status still classifies the failure without a parseable message.
	assert.Contains(t, ce.PublicMessage(), "403")
}

func TestClient_SearchUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream, 20*time.Millisecond)

	_, err := c.Search(context.Background(), testCredential(), "tycho", 10)
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindUpstreamUnreachable, ce.Kind)
	assert.Equal(t, http.StatusGatewayTimeout, ce.HTTPStatus())
}

func TestClient_SearchBlankQueryNeverHitsUpstream(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream, 5*time.Second)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := c.Search(context.Background(), testCredential(), q, 10)
		require.Error(t, err)

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domainerrors.CodeInvalidQuery, domainErr.Code)
	}

	assert.Equal(t, int64(0), calls.Load())
}

func TestClient_SearchLimitClamped(t *testing.T) {
	var gotLimit string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream, 5*time.Second)

	_, err := c.Search(context.Background(), testCredential(), "tycho", 999)
	require.NoError(t, err)
	assert.Equal(t, "50", gotLimit)
}

func TestClient_RecommendRequiresSeeds(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream, 5*time.Second)

	_, err := c.Recommend(context.Background(), testCredential(), Seeds{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeInvalidQuery, domainErr.Code)
	assert.Equal(t, int64(0), calls.Load())
}

func TestClient_RecommendSendsSeeds(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommendations", r.URL.Path)
		assert.Equal(t, "t1,t2", r.URL.Query().Get("seed_tracks"))
		assert.Equal(t, "ambient", r.URL.Query().Get("seed_genres"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"tracks":[{"id":"t3"}]}`))
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream, 5*time.Second)

	recs, err := c.Recommend(context.Background(), testCredential(), Seeds{
		TrackIDs: []string{"t1", "t2"},
		Genres:   []string{"ambient"},
	})
	require.NoError(t, err)
	require.Len(t, recs.Tracks, 1)
	assert.Equal(t, "t3", recs.Tracks[0].ID)
}

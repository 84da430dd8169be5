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

func newTestBroker(tokenURL string) *Broker {
	return NewBroker(config.CatalogConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      tokenURL,
		Timeout:      5 * time.Second,
	}, slog.New(slog.DiscardHandler))
}

func TestBroker_Acquire(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc123","token_type":"Bearer","expires_in":3600}`))
	}))
	defer ts.Close()

	cred, err := newTestBroker(ts.URL).Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", cred.Token)
	assert.False(t, cred.Expired(time.Now()))
}

func TestBroker_AcquireRejectedNotRetried(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := newTestBroker(ts.URL).Acquire(context.Background())
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeUpstreamAuth, domainErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, domainErr.HTTPStatus())
	assert.Equal(t, int64(1), calls.Load())
}

func TestBroker_AcquireTransientRetriedOnce(t *testing.T) {
	// Endpoint that is unreachable: both the initial attempt and the single
	// retry fail, and the caller gets an upstream auth error.
	badBroker := newTestBroker("http://127.0.0.1:1/token")

	_, err := badBroker.Acquire(context.Background())
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeUpstreamAuth, domainErr.Code)
}

func TestCredential_Expired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		cred *Credential
		want bool
	}{
		{"nil credential", nil, true},
		{"empty token", &Credential{}, true},
		{"no expiry never expires", &Credential{Token: "abc"}, false},
		{"fresh token", &Credential{Token: "abc", Expiry: now.Add(time.Hour)}, false},
		{"past expiry", &Credential{Token: "abc", Expiry: now.Add(-time.Minute)}, true},
		{"inside skew window", &Credential{Token: "abc", Expiry: now.Add(10 * time.Second)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cred.Expired(now))
		})
	}
}

func TestCredentialFromRequest(t *testing.T) {
	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := CredentialFromRequest(r)
		assert.ErrorIs(t, err, domainerrors.ErrMissingCredential)
	})

	t.Run("cookie present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "abc123"})

		cred, err := CredentialFromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, "abc123", cred.Token)
	})
}

func TestCredentialContextRoundTrip(t *testing.T) {
	cred := &Credential{Token: "abc", Expiry: time.Now().Add(time.Hour)}
	ctx := WithCredential(context.Background(), cred)

	got, err := CredentialFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, cred, got)
}

func TestCredentialFromContext_Expired(t *testing.T) {
	cred := &Credential{Token: "abc", Expiry: time.Now().Add(-time.Minute)}
	ctx := WithCredential(context.Background(), cred)

	_, err := CredentialFromContext(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredential)
}

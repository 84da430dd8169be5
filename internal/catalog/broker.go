package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/resonateapp/resonate-server/internal/config"
	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
)

// CookieName carries the catalog credential between requests. The browser
// holds the token so the server stays stateless about upstream sessions.
const CookieName = "catalog_access_token"

// expirySkew is subtracted from a credential's lifetime so a token that is
// about to lapse mid-request is treated as already expired.
const expirySkew = 30 * time.Second

// Credential is an upstream access token with its expiry.
type Credential struct {
	Token  string
	Expiry time.Time
}

// Expired reports whether the credential is unusable at time now.
// A token inside the skew window counts as expired.
func (c *Credential) Expired(now time.Time) bool {
	if c == nil || c.Token == "" {
		return true
	}
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Before(c.Expiry.Add(-expirySkew))
}

// Broker acquires catalog credentials via the client-credentials grant.
type Broker struct {
	conf   *clientcredentials.Config
	http   *http.Client
	logger *slog.Logger
}

// NewBroker creates a Broker from catalog configuration.
func NewBroker(cfg config.CatalogConfig, logger *slog.Logger) *Broker {
	return &Broker{
		conf: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.AuthURL,
		},
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Acquire fetches a fresh credential from the token endpoint. A transient
// failure is retried once; a rejection from the endpoint is not, since the
// same client ID and secret would be rejected again.
func (b *Broker) Acquire(ctx context.Context) (*Credential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, b.http)

	tok, err := b.conf.Token(ctx)
	if err != nil && !isRejection(err) {
		b.logger.Warn("token acquisition failed, retrying once", "error", err)
		tok, err = b.conf.Token(ctx)
	}
	if err != nil {
		b.logger.Error("token acquisition failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstreamAuth, "could not authenticate with music catalog")
	}

	return &Credential{Token: tok.AccessToken, Expiry: tok.Expiry}, nil
}

// isRejection reports whether the token endpoint answered with an error
// status, as opposed to being unreachable.
func isRejection(err error) bool {
	var re *oauth2.RetrieveError
	return errors.As(err, &re)
}

// NewCookie wraps a credential in a cookie scoped to this server.
func NewCookie(cred *Credential, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    cred.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !cred.Expiry.IsZero() {
		c.Expires = cred.Expiry
	}
	return c
}

// CredentialFromRequest extracts the credential from the request cookie.
// A missing cookie yields ErrMissingCredential so the client knows to
// re-authenticate. Cookies carry no expiry back to the server, so staleness
// is detected upstream and surfaces as a rejected call.
func CredentialFromRequest(r *http.Request) (*Credential, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, domainerrors.ErrMissingCredential
	}
	return &Credential{Token: cookie.Value}, nil
}

type credentialKey struct{}

// WithCredential stores a credential in the context.
func WithCredential(ctx context.Context, cred *Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, cred)
}

// CredentialFromContext returns the credential attached by middleware.
func CredentialFromContext(ctx context.Context) (*Credential, error) {
	cred, ok := ctx.Value(credentialKey{}).(*Credential)
	if !ok || cred.Expired(time.Now()) {
		return nil, domainerrors.ErrMissingCredential
	}
	return cred, nil
}

// Package urls rewrites stored media references into absolute URLs.
//
// Records hold paths relative to a media bucket ("users", "songs") so the
// server can move hosts without rewriting the database. The rewriter joins
// the configured public base URL with the bucket and reference at response
// time.
package urls

import (
	"fmt"
	"net/url"
	"strings"
)

// Rewriter converts relative media references to absolute URLs and back.
type Rewriter struct {
	base *url.URL
}

// New creates a Rewriter for the given public base URL.
// The base must be absolute (scheme and host).
func New(publicURL string) (*Rewriter, error) {
	base, err := url.Parse(strings.TrimRight(publicURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse public URL: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("public URL must be absolute: %q", publicURL)
	}
	return &Rewriter{base: base}, nil
}

// Rewrite returns the absolute URL for a reference within a bucket.
// An empty reference resolves to the bucket root. References that are
// already absolute are returned unchanged, so catalog artwork hosted
// upstream passes through untouched.
func (r *Rewriter) Rewrite(bucket, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	u := *r.base
	if ref == "" {
		u.Path = joinPath(u.Path, "media", bucket)
	} else {
		u.Path = joinPath(u.Path, "media", bucket, ref)
	}
	return u.String()
}

// RewriteUser rewrites a reference within the user photo bucket.
func (r *Rewriter) RewriteUser(ref string) string { return r.Rewrite("users", ref) }

// RewriteSong rewrites a reference within the song artwork bucket.
func (r *Rewriter) RewriteSong(ref string) string { return r.Rewrite("songs", ref) }

// Relative extracts the bucket-relative reference from an absolute URL
// previously produced by Rewrite. It returns the bucket, the reference, and
// whether the URL belongs to this rewriter's base.
func (r *Rewriter) Relative(abs string) (bucket, ref string, ok bool) {
	u, err := url.Parse(abs)
	if err != nil {
		return "", "", false
	}
	if u.Scheme != r.base.Scheme || u.Host != r.base.Host {
		return "", "", false
	}

	prefix := joinPath(r.base.Path, "media") + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", "", false
	}

	rest := strings.TrimPrefix(u.Path, prefix)
	bucket, ref, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, ref, true
}

func joinPath(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return "/" + strings.Join(cleaned, "/")
}

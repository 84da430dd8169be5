// Package id generates prefixed, URL-safe entity identifiers.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// alphabet excludes lookalike characters for readability in logs and URLs.
	alphabet = "0123456789abcdefghijkmnpqrstuvwxyz"
	length   = 16
)

// Entity prefixes. An ID looks like "usr_x7k2m9p4q8r3t6v1".
const (
	PrefixUser     = "usr"
	PrefixSong     = "sng"
	PrefixPlaylist = "pls"
)

// Generate returns a new identifier with the given prefix.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + "_" + suffix, nil
}

// MustGenerate is like Generate but panics on failure. Entropy exhaustion is
// the only failure mode, so this is safe for request paths.
func MustGenerate(prefix string) string {
	s, err := Generate(prefix)
	if err != nil {
		panic(err)
	}
	return s
}

// HasPrefix reports whether s carries the given entity prefix.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix+"_")
}

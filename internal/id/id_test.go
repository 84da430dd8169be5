package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate(PrefixUser)
	require.NoError(t, err)
	assert.Len(t, got, len(PrefixUser)+1+length)
	assert.True(t, HasPrefix(got, PrefixUser))
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := MustGenerate(PrefixSong)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("pls_abc123", PrefixPlaylist))
	assert.False(t, HasPrefix("plsabc123", PrefixPlaylist))
	assert.False(t, HasPrefix("usr_abc123", PrefixPlaylist))
}

package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SaveGetRoundTrip(t *testing.T) {
	s, err := NewStorage(t.TempDir(), "songs")
	require.NoError(t, err)

	data := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	require.NoError(t, s.Save("sng_abc", data))

	got, err := s.Get("sng_abc")
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.True(t, s.Exists("sng_abc"))
	assert.Equal(t, "sng_abc.jpg", s.Ref("sng_abc"))
}

func TestStorage_GetMissing(t *testing.T) {
	s, err := NewStorage(t.TempDir(), "songs")
	require.NoError(t, err)

	_, err = s.Get("sng_missing")
	assert.Error(t, err)
	assert.False(t, s.Exists("sng_missing"))
}

func TestStorage_DeleteIdempotent(t *testing.T) {
	s, err := NewStorage(t.TempDir(), "users")
	require.NoError(t, err)

	require.NoError(t, s.Save("usr_abc", []byte{1, 2, 3}))
	require.NoError(t, s.Delete("usr_abc"))
	require.NoError(t, s.Delete("usr_abc"))
	assert.False(t, s.Exists("usr_abc"))
}

func TestStorage_RejectsEmptyInputs(t *testing.T) {
	_, err := NewStorage("", "users")
	assert.Error(t, err)

	s, err := NewStorage(t.TempDir(), "users")
	require.NoError(t, err)

	assert.Error(t, s.Save("", []byte{1}))
	assert.Error(t, s.Save("usr_abc", nil))
}

func TestStorage_Hash(t *testing.T) {
	s, err := NewStorage(t.TempDir(), "users")
	require.NoError(t, err)

	require.NoError(t, s.Save("usr_abc", []byte("hello")))
	hash, err := s.Hash("usr_abc")
	require.NoError(t, err)
	assert.Len(t, hash, 64)
}

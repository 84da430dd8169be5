package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	storage, err := NewStorage(t.TempDir(), "users")
	require.NoError(t, err)
	return NewProcessor(storage, slog.New(slog.DiscardHandler))
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessor_Process(t *testing.T) {
	p := newTestProcessor(t)

	res, err := p.Process(context.Background(), "usr_test1", encodePNG(t, 800, 600))
	require.NoError(t, err)
	assert.Equal(t, "usr_test1.jpg", res.Ref)
	assert.NotEmpty(t, res.BlurHash)

	// Stored file must be a 520x520 JPEG.
	data, err := p.storage.Get("usr_test1")
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, photoSize, img.Bounds().Dx())
	assert.Equal(t, photoSize, img.Bounds().Dy())
}

func TestProcessor_ProcessRejectsGarbage(t *testing.T) {
	p := newTestProcessor(t)

	_, err := p.Process(context.Background(), "usr_test2", []byte("not an image"))
	assert.Error(t, err)
}

func TestProcessor_ProcessUpscalesSmallImages(t *testing.T) {
	p := newTestProcessor(t)

	res, err := p.Process(context.Background(), "usr_test3", encodePNG(t, 100, 100))
	require.NoError(t, err)

	data, err := p.storage.Get("usr_test3")
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, photoSize, img.Bounds().Dx())
	assert.Equal(t, photoSize, img.Bounds().Dy())
	assert.NotEmpty(t, res.Ref)
}

package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"log/slog"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// photoSize is the edge length of stored photos. Uploads are decoded,
// center-cropped to a square and scaled to photoSize x photoSize before
// being written out as JPEG.
const photoSize = 520

const jpegQuality = 85

// Processor normalizes uploaded photos and stores them.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Result describes a stored photo.
type Result struct {
	Ref      string // Bucket-relative reference, e.g. "usr_abc123.jpg"
	BlurHash string // Placeholder hash for clients to render while loading
}

// Process decodes an uploaded image, normalizes it to a 520x520 JPEG, and
// stores it under the entity ID.
func (p *Processor) Process(ctx context.Context, id string, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	normalized := normalize(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, normalized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	if err := p.storage.Save(id, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}

	blurHash, err := ComputeBlurHash(normalized)
	if err != nil {
		// Placeholder generation is best effort; the photo itself is stored.
		p.logger.Warn("blurhash failed", "id", id, "error", err)
		blurHash = ""
	}

	p.logger.Debug("processed photo",
		"id", id,
		"format", format,
		"bytes_in", len(data),
		"bytes_out", buf.Len(),
	)

	return &Result{Ref: p.storage.Ref(id), BlurHash: blurHash}, nil
}

// normalize center-crops img to a square and scales it to photoSize.
func normalize(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Center crop to square.
	side := min(w, h)
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, photoSize, photoSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Src, nil)
	return dst
}

// Package thumbnail performs format-aware pixel extraction: it crops
// an icon's bounding box out of its sprite-sheet image into a new
// buffer of the icon's own size. The copy is exact, pixel by pixel in
// the source format, with no color conversion and no resampling.
package thumbnail

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spritefold/icon-atlas-mcp/internal/synth"
)

// Extractor produces per-icon thumbnails from sprite sheets through an
// external decode capability.
type Extractor struct {
	dec Decoder
	log *zap.Logger
}

// NewExtractor creates an extractor. dec must not be nil.
func NewExtractor(dec Decoder, log *zap.Logger) *Extractor {
	return &Extractor{dec: dec, log: log}
}

// Extract crops entry's bounding box out of its sprite sheet. The
// result has exactly the box's width and height, in the sheet's own
// pixel format.
//
// Failures here are final for the request but affect nothing else: a
// missing sheet, an unsupported pixel format, or a box exceeding the
// sheet bounds all fail with the not-implemented kind and are logged
// with enough context to find the offending icon.
func (e *Extractor) Extract(entry *synth.Entry) (WritableBuffer, error) {
	if info, err := os.Stat(entry.Resource); err != nil || info.IsDir() {
		e.log.Warn("thumbnail source missing",
			zap.String("entry", entry.Name),
			zap.String("resource", entry.Resource))
		return nil, &synth.PathError{Op: "extract", Path: entry.Path, Err: synth.ErrNotImplemented}
	}

	src, err := e.dec.Decode(entry.Resource)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", entry.Resource, err)
	}

	format := src.Format()
	stride, err := format.PixelSize()
	if err != nil {
		e.log.Warn("pixel format not implemented for resource",
			zap.String("resource", entry.Resource),
			zap.Stringer("format", format))
		return nil, &synth.PathError{Op: "extract", Path: entry.Path, Err: synth.ErrNotImplemented}
	}

	srcW, srcH := src.Size()
	box := entry.Box
	if box.X+box.W > srcW {
		e.log.Warn("x out of range",
			zap.String("entry", entry.Name),
			zap.String("resource", entry.Resource),
			zap.Int("x", box.X), zap.Int("width", box.W), zap.Int("source_width", srcW))
		return nil, &synth.PathError{Op: "extract", Path: entry.Path, Err: synth.ErrNotImplemented}
	}
	if box.Y+box.H > srcH {
		e.log.Warn("y out of range",
			zap.String("entry", entry.Name),
			zap.String("resource", entry.Resource),
			zap.Int("y", box.Y), zap.Int("height", box.H), zap.Int("source_height", srcH))
		return nil, &synth.PathError{Op: "extract", Path: entry.Path, Err: synth.ErrNotImplemented}
	}

	dst, err := NewBuffer(box.W, box.H, format)
	if err != nil {
		return nil, err
	}

	pix := make([]byte, stride)
	for dy := 0; dy < box.H; dy++ {
		for dx := 0; dx < box.W; dx++ {
			if err := src.GetPixel(box.X+dx, box.Y+dy, pix); err != nil {
				return nil, fmt.Errorf("read pixel (%d, %d): %w", box.X+dx, box.Y+dy, err)
			}
			if err := dst.SetPixel(dx, dy, pix); err != nil {
				return nil, fmt.Errorf("write pixel (%d, %d): %w", dx, dy, err)
			}
		}
	}
	return dst, nil
}

// IdealSize returns the preferred thumbnail dimensions for an entry:
// always the icon's native size.
func IdealSize(entry *synth.Entry) (width, height int) {
	return entry.Box.W, entry.Box.H
}

package thumbnail

import (
	"fmt"
	"image"
	"image/color"
)

// Buffer is a decoded pixel buffer with per-pixel read access. It is
// the capability the extractor consumes; implementations other than
// the built-in one (a host-supplied decoder, a test fixture) just need
// these three methods.
type Buffer interface {
	// Size returns the buffer dimensions in pixels.
	Size() (width, height int)

	// Format returns the pixel layout.
	Format() Format

	// GetPixel copies the raw bytes of pixel (x, y) into pix, which
	// must be at least Format().PixelSize() bytes long.
	GetPixel(x, y int, pix []byte) error
}

// WritableBuffer is a Buffer that also accepts per-pixel writes.
type WritableBuffer interface {
	Buffer

	// SetPixel stores the raw bytes in pix as pixel (x, y).
	SetPixel(x, y int, pix []byte) error
}

// Decoder loads an image file into a pixel buffer. This is the
// external decode capability; the extractor never touches files or
// codecs itself.
type Decoder interface {
	Decode(path string) (Buffer, error)
}

// memBuffer is a flat byte-slice pixel buffer.
type memBuffer struct {
	width, height int
	format        Format
	stride        int
	pix           []byte
}

// NewBuffer creates a blank writable buffer of the given dimensions
// and format.
func NewBuffer(width, height int, format Format) (WritableBuffer, error) {
	stride, err := format.PixelSize()
	if err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid buffer size %dx%d", width, height)
	}
	return &memBuffer{
		width:  width,
		height: height,
		format: format,
		stride: stride,
		pix:    make([]byte, width*height*stride),
	}, nil
}

func (b *memBuffer) Size() (int, int) { return b.width, b.height }
func (b *memBuffer) Format() Format   { return b.format }

func (b *memBuffer) offset(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, fmt.Errorf("pixel (%d, %d) outside %dx%d buffer", x, y, b.width, b.height)
	}
	return (y*b.width + x) * b.stride, nil
}

func (b *memBuffer) GetPixel(x, y int, pix []byte) error {
	off, err := b.offset(x, y)
	if err != nil {
		return err
	}
	if len(pix) < b.stride {
		return fmt.Errorf("pixel slice too short: %d < %d", len(pix), b.stride)
	}
	copy(pix[:b.stride], b.pix[off:off+b.stride])
	return nil
}

func (b *memBuffer) SetPixel(x, y int, pix []byte) error {
	off, err := b.offset(x, y)
	if err != nil {
		return err
	}
	if len(pix) < b.stride {
		return fmt.Errorf("pixel slice too short: %d < %d", len(pix), b.stride)
	}
	copy(b.pix[off:off+b.stride], pix[:b.stride])
	return nil
}

// ToImage converts a buffer into a standard image for encoding or
// display. The channel layout maps directly: RGBA32 to image.RGBA,
// IRGBA32 to image.NRGBA, RGB24 to an opaque image.NRGBA.
func ToImage(buf Buffer) (image.Image, error) {
	w, h := buf.Size()
	stride, err := buf.Format().PixelSize()
	if err != nil {
		return nil, err
	}

	pix := make([]byte, stride)
	switch buf.Format() {
	case FormatRGBA32:
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if err := buf.GetPixel(x, y, pix); err != nil {
					return nil, err
				}
				copy(img.Pix[img.PixOffset(x, y):], pix)
			}
		}
		return img, nil
	case FormatIRGBA32:
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if err := buf.GetPixel(x, y, pix); err != nil {
					return nil, err
				}
				copy(img.Pix[img.PixOffset(x, y):], pix)
			}
		}
		return img, nil
	case FormatRGB24:
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if err := buf.GetPixel(x, y, pix); err != nil {
					return nil, err
				}
				img.SetNRGBA(x, y, color.NRGBA{R: pix[0], G: pix[1], B: pix[2], A: 0xff})
			}
		}
		return img, nil
	default:
		return nil, fmt.Errorf("cannot convert %s buffer to image", buf.Format())
	}
}

package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	// Sprite sheets in the wild are PNG almost always, but configs may
	// also reference JPEG, GIF, BMP or TIFF sheets.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// FileDecoder is the built-in Decoder: it loads images from disk and
// keeps decoded buffers in memory keyed by path. Many icons share one
// sprite sheet, so without the cache every thumbnail request would
// re-decode the same file; caching the decoded buffer changes no
// observable behavior because the underlying files never change during
// a process lifetime.
//
// FileDecoder is safe for concurrent use.
type FileDecoder struct {
	mu      sync.RWMutex
	buffers map[string]Buffer
}

// NewFileDecoder creates an empty decoder cache.
func NewFileDecoder() *FileDecoder {
	return &FileDecoder{buffers: make(map[string]Buffer)}
}

// Decode returns the pixel buffer for an image file, from cache when
// possible.
func (d *FileDecoder) Decode(path string) (Buffer, error) {
	d.mu.RLock()
	if buf, ok := d.buffers[path]; ok {
		d.mu.RUnlock()
		return buf, nil
	}
	d.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	buf, err := bufferFromImage(img)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.buffers[path] = buf
	d.mu.Unlock()

	return buf, nil
}

// Evict removes one cached buffer; the next Decode for that path reads
// from disk again.
func (d *FileDecoder) Evict(path string) {
	d.mu.Lock()
	delete(d.buffers, path)
	d.mu.Unlock()
}

// bufferFromImage flattens a decoded image into a raw pixel buffer.
// The concrete decode type picks the format: premultiplied RGBA maps
// to RGBA32, non-premultiplied to IRGBA32, and fully opaque images
// (JPEG's YCbCr, grayscale, opaque palettes) to RGB24. Anything else
// is converted through non-premultiplied RGBA.
func bufferFromImage(img image.Image) (Buffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.RGBA:
		buf := &memBuffer{width: w, height: h, format: FormatRGBA32, stride: 4,
			pix: make([]byte, w*h*4)}
		copyRows(buf, src.Pix, src.Stride, w, h)
		return buf, nil
	case *image.NRGBA:
		buf := &memBuffer{width: w, height: h, format: FormatIRGBA32, stride: 4,
			pix: make([]byte, w*h*4)}
		copyRows(buf, src.Pix, src.Stride, w, h)
		return buf, nil
	}

	if isOpaque(img) {
		buf := &memBuffer{width: w, height: h, format: FormatRGB24, stride: 3,
			pix: make([]byte, w*h*3)}
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				buf.pix[i] = c.R
				buf.pix[i+1] = c.G
				buf.pix[i+2] = c.B
				i += 3
			}
		}
		return buf, nil
	}

	buf := &memBuffer{width: w, height: h, format: FormatIRGBA32, stride: 4,
		pix: make([]byte, w*h*4)}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf.pix[i] = c.R
			buf.pix[i+1] = c.G
			buf.pix[i+2] = c.B
			buf.pix[i+3] = c.A
			i += 4
		}
	}
	return buf, nil
}

// copyRows copies a packed source Pix slice row by row, dropping any
// row padding the source stride carries.
func copyRows(dst *memBuffer, srcPix []byte, srcStride, w, h int) {
	rowLen := w * dst.stride
	for y := 0; y < h; y++ {
		copy(dst.pix[y*rowLen:(y+1)*rowLen], srcPix[y*srcStride:y*srcStride+rowLen])
	}
}

// isOpaque reports whether every pixel is fully opaque.
func isOpaque(img image.Image) bool {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok {
		return o.Opaque()
	}
	return false
}

package preset

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/spritefold/icon-atlas-mcp/internal/synth"
	"github.com/spritefold/icon-atlas-mcp/internal/thumbnail"
)

// Metrics bundles the display metadata and thumbnail capability for
// one namespace entry. The underlying entry is immutable, so a handle
// stays valid for the whole process lifetime.
type Metrics struct {
	entry *synth.Entry
	ex    *thumbnail.Extractor

	// Label is the entry name shown under the thumbnail.
	Label string

	// Caption is the formatted bounding box.
	Caption string

	// Tooltip is the sprite-sheet path; empty when the entry carries
	// none.
	Tooltip string
}

func newMetrics(entry *synth.Entry, ex *thumbnail.Extractor) *Metrics {
	return &Metrics{
		entry:   entry,
		ex:      ex,
		Label:   entry.Name,
		Caption: entry.Box.String(),
		Tooltip: entry.Tooltip,
	}
}

// Entry returns the namespace entry this handle wraps.
func (m *Metrics) Entry() *synth.Entry {
	return m.entry
}

// ThumbnailImage extracts the entry's icon from its sprite sheet and
// returns it as a standard image.
func (m *Metrics) ThumbnailImage() (image.Image, error) {
	buf, err := m.ex.Extract(m.entry)
	if err != nil {
		return nil, err
	}
	return thumbnail.ToImage(buf)
}

// IdealSize returns the preferred thumbnail dimensions: the icon's
// native size.
func (m *Metrics) IdealSize() (width, height int) {
	return thumbnail.IdealSize(m.entry)
}

// DominantColor averages the icon's opaque pixels and returns the
// result as a hex swatch for the browser's metadata panel. Fully
// transparent pixels are ignored; an icon with none returns "".
func (m *Metrics) DominantColor() (string, error) {
	img, err := m.ThumbnailImage()
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	var rSum, gSum, bSum, n uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(b >> 8)
			n++
		}
	}
	if n == 0 {
		return "", nil
	}

	c := colorful.Color{
		R: float64(rSum/n) / 255.0,
		G: float64(gSum/n) / 255.0,
		B: float64(bSum/n) / 255.0,
	}
	return c.Hex(), nil
}

package thumbnail

import (
	"fmt"

	"github.com/spritefold/icon-atlas-mcp/internal/synth"
)

// Format identifies the pixel layout of a decoded buffer. The list is
// deliberately closed: extraction copies raw pixels without
// conversion, so a format is only added here once icons actually use
// it and the copy path has been checked against it.
type Format int

const (
	// FormatRGBA32 is 8-bit-per-channel premultiplied RGBA.
	FormatRGBA32 Format = iota

	// FormatIRGBA32 is 8-bit-per-channel non-premultiplied RGBA.
	FormatIRGBA32

	// FormatRGB24 is 8-bit-per-channel opaque RGB.
	FormatRGB24
)

// PixelSize returns the per-pixel byte stride for a format. Unknown
// formats fail with the not-implemented kind.
func (f Format) PixelSize() (int, error) {
	switch f {
	case FormatRGBA32, FormatIRGBA32:
		return 4, nil
	case FormatRGB24:
		return 3, nil
	default:
		return 0, fmt.Errorf("pixel format %d: %w", int(f), synth.ErrNotImplemented)
	}
}

func (f Format) String() string {
	switch f {
	case FormatRGBA32:
		return "RGBA32"
	case FormatIRGBA32:
		return "IRGBA32"
	case FormatRGB24:
		return "RGB24"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

package synth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spritefold/icon-atlas-mcp/internal/atlas"
)

// ListMode selects which child kinds a directory operation sees. BOTH
// is the union of the two bits, so callers test bits rather than
// comparing values.
type ListMode int

const (
	ListFiles ListMode = 1 << iota
	ListDirs

	ListBoth = ListFiles | ListDirs
)

// Entry is one node of the synthetic namespace. File entries carry a
// sprite-sheet resource and a bounding box; directory entries carry
// ordered child lists instead. Entries are immutable once the tree is
// built.
type Entry struct {
	// Path is the full synthetic path, always prefixed by the
	// namespace root marker.
	Path string

	// Name is the leaf path segment. Empty for the root.
	Name string

	// IsFile distinguishes icon entries from directories.
	IsFile bool

	// Box is the icon's rectangle inside its sprite sheet. The zero
	// rectangle for directories.
	Box atlas.Box

	// Resource is the absolute path of the sprite-sheet image. Empty
	// for directories.
	Resource string

	// Tooltip is shown by the host browser; for icons it is the
	// resource path.
	Tooltip string

	// ModTime is fixed at construction and never changes.
	ModTime time.Time

	// Files and Dirs are the ordered child lists of a directory.
	Files []*Entry
	Dirs  []*Entry
}

// ChildCount counts children matching mode.
func (e *Entry) ChildCount(mode ListMode) int {
	count := 0
	if mode&ListFiles != 0 {
		count += len(e.Files)
	}
	if mode&ListDirs != 0 {
		count += len(e.Dirs)
	}
	return count
}

// ChildAt returns the index-th child matching mode. When mode selects
// both kinds, directories order before files.
func (e *Entry) ChildAt(mode ListMode, index int) (*Entry, error) {
	if index < 0 {
		return nil, fmt.Errorf("child index %d out of range", index)
	}
	if mode&ListDirs != 0 {
		if index < len(e.Dirs) {
			return e.Dirs[index], nil
		}
		index -= len(e.Dirs)
	}
	if mode&ListFiles != 0 && index < len(e.Files) {
		return e.Files[index], nil
	}
	return nil, fmt.Errorf("child index out of range for mode %d", mode)
}

// Size reports the entry's file size. Sizes are not tracked in this
// namespace, so this is always zero. The host expects a double to
// allow sizes beyond 4 GiB, hence the type.
func (e *Entry) Size() float64 {
	return 0
}

// ModTimeString formats the fixed construction timestamp as integer
// seconds, the form the host's change detection consumes.
func (e *Entry) ModTimeString() string {
	return strconv.FormatInt(e.ModTime.Unix(), 10)
}

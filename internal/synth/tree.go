// Package synth builds and serves the synthetic icon namespace: an
// in-memory tree with one root directory and one file entry per
// resolved icon, constructed exactly once at startup and immutable
// afterwards. Because nothing mutates after the build, concurrent
// reads need no locking.
package synth

import (
	"strings"
	"time"

	"github.com/spritefold/icon-atlas-mcp/internal/atlas"
)

// RootMarker is the fixed token prefixing every path inside this
// namespace, analogous to a volume or scheme prefix. RootMarker alone,
// or RootMarker followed by a bare ":", denotes the root.
const RootMarker = "[IconAtlas]"

// Tree is the whole namespace. Build it once and pass it by reference
// to whatever needs it; there is deliberately no package-level
// instance.
type Tree struct {
	Root *Entry
}

// Build constructs the namespace from resolved icons. Every icon
// becomes one file entry directly under the root. Icons sharing a key
// but differing in source or box each get their own entry, so
// duplicate names under the root are possible; Resolve then returns
// whichever traversal finds first.
func Build(icons []atlas.Icon) *Tree {
	now := time.Now()
	root := &Entry{
		Path:    RootMarker,
		Name:    "",
		ModTime: now,
	}

	for _, icon := range icons {
		root.Files = append(root.Files, &Entry{
			Path:     RootMarker + ":" + icon.Key,
			Name:     icon.Key,
			IsFile:   true,
			Box:      icon.Box,
			Resource: icon.SourcePath,
			Tooltip:  icon.SourcePath,
			ModTime:  now,
		})
	}

	return &Tree{Root: root}
}

// FileCount returns the number of file entries in the whole tree.
func (t *Tree) FileCount() int {
	var count func(*Entry) int
	count = func(e *Entry) int {
		n := len(e.Files)
		for _, d := range e.Dirs {
			n += count(d)
		}
		return n
	}
	return count(t.Root)
}

// Resolve walks the tree to the entry named by a synthetic path. Paths
// outside this namespace (not starting with RootMarker) and paths
// naming no entry both fail with ErrNotAvailable.
//
// At each segment directory children are searched before file
// children, so when a file and a directory share a name at the same
// level the directory wins.
func (t *Tree) Resolve(path string) (*Entry, error) {
	if !strings.HasPrefix(path, RootMarker) {
		return nil, &PathError{Op: "resolve", Path: path, Err: ErrNotAvailable}
	}
	if path == RootMarker || path == RootMarker+":" {
		return t.Root, nil
	}

	relative := strings.TrimPrefix(strings.TrimPrefix(path, RootMarker), ":")
	relative = strings.TrimPrefix(relative, "/")

	current := t.Root
	for _, part := range strings.Split(relative, "/") {
		next := findChild(current, part)
		if next == nil {
			return nil, &PathError{Op: "resolve", Path: path, Err: ErrNotAvailable}
		}
		current = next
	}
	return current, nil
}

// findChild returns the first child of e named part, directories
// first.
func findChild(e *Entry, part string) *Entry {
	for _, dir := range e.Dirs {
		if dir.Name == part {
			return dir
		}
	}
	for _, file := range e.Files {
		if file.Name == part {
			return file
		}
	}
	return nil
}

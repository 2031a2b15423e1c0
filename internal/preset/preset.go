// Package preset adapts the synthetic icon namespace to the host's
// preset-browser contract: claiming paths, building per-entry display
// metrics, and serving thumbnail images.
package preset

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spritefold/icon-atlas-mcp/internal/synth"
	"github.com/spritefold/icon-atlas-mcp/internal/thumbnail"
)

// Category is the fixed preset category for everything in this
// namespace.
const Category = synth.RootMarker

// GenericThumbnail is the host-side image resource used when an entry
// defines no thumbnail of its own. Every entry here does, so this is
// effectively never consumed, but the contract requires naming one.
const GenericThumbnail = "item.thumbnail.undefined"

// Type implements the preset-type surface over one namespace tree.
type Type struct {
	tree *synth.Tree
	ex   *thumbnail.Extractor
	log  *zap.Logger
}

// NewType wires a preset type over an already-built tree.
func NewType(tree *synth.Tree, ex *thumbnail.Extractor, log *zap.Logger) *Type {
	return &Type{tree: tree, ex: ex, log: log}
}

// Recognize claims any path starting with the namespace root marker
// and returns the category name. Other paths are not ours and fail
// with the not-implemented kind; there is no need to look at any
// "file" contents, since everything under the marker is defined here.
func (t *Type) Recognize(path string) (string, error) {
	if !strings.HasPrefix(path, synth.RootMarker) {
		return "", &synth.PathError{Op: "recognize", Path: path, Err: synth.ErrNotImplemented}
	}
	return Category, nil
}

// Metrics returns display metrics for a path. Metrics for a given
// entry never change after startup, so when the host hands back a
// previous handle it is returned unchanged; otherwise the path is
// resolved and a fresh handle built.
func (t *Type) Metrics(path string, previous *Metrics) (*Metrics, error) {
	if previous != nil {
		return previous, nil
	}
	entry, err := t.tree.Resolve(path)
	if err != nil {
		return nil, err
	}
	return newMetrics(entry, t.ex), nil
}

// GenericThumbnailResource names the fallback thumbnail resource for a
// path.
func (t *Type) GenericThumbnailResource(path string) string {
	return GenericThumbnail
}

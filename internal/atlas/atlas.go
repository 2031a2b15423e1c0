// Package atlas holds the icon data model and the index that resolves
// scanned icon declarations against discovered sprite-sheet images.
package atlas

import "fmt"

// Box is a pixel rectangle inside a sprite-sheet image.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"width"`
	H int `json:"height"`
}

// String formats the box the way the preset browser captions it.
func (b Box) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", b.X, b.Y, b.W, b.H)
}

// Decl is one icon declaration as read from a configuration file. The
// source key is still symbolic at this point; it may or may not resolve
// to a real image.
//
// Decl is comparable on purpose: the scanner collects declarations into
// a set keyed by the full tuple, so two icons sharing a key but
// differing in source or box both survive, while exact duplicates
// collapse.
type Decl struct {
	Key       string
	SourceKey string
	Box       Box
}

// Icon is a resolved declaration: the symbolic source key has been
// replaced by the absolute path of an existing sprite-sheet image.
type Icon struct {
	Key        string
	SourcePath string
	Box        Box
}

// Resolve looks every declaration's source key up in the image map.
// Declarations whose key has no image are dropped; that is not an
// error, the icon is simply unusable without its sheet. The result
// order is unspecified.
func Resolve(images map[string]string, decls map[Decl]struct{}) []Icon {
	icons := make([]Icon, 0, len(decls))
	for decl := range decls {
		path, ok := images[decl.SourceKey]
		if !ok || path == "" {
			continue
		}
		icons = append(icons, Icon{
			Key:        decl.Key,
			SourcePath: path,
			Box:        decl.Box,
		})
	}
	return icons
}

package cfgscan

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/spritefold/icon-atlas-mcp/internal/atlas"
)

// node is one element of a parsed configuration document. Configuration
// files nest generic "atom" and "hash" elements distinguished by their
// type attribute, so the document is unmarshalled into a uniform
// recursive shape and the typed records are extracted in a second step.
type node struct {
	XMLName  xml.Name
	Type     string `xml:"type,attr"`
	Key      string `xml:"key,attr"`
	Text     string `xml:",chardata"`
	Children []node `xml:",any"`
}

const (
	elemAtom = "atom"
	elemHash = "hash"

	typeUIElements = "UIElements"
	typeImage      = "Image"
	typeIcon       = "Icon"
	typeSource     = "Source"
	typeLocation   = "Location"
	typeGrid       = "Grid"
)

// parseDocument unmarshals a whole configuration file.
func parseDocument(data []byte) (*node, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// uiElementSections returns every atom of type UIElements anywhere in
// the document.
func uiElementSections(n *node) []*node {
	var sections []*node
	var walk func(*node)
	walk = func(cur *node) {
		if cur.XMLName.Local == elemAtom && cur.Type == typeUIElements {
			sections = append(sections, cur)
		}
		for i := range cur.Children {
			walk(&cur.Children[i])
		}
	}
	walk(n)
	return sections
}

// childOfType returns the first direct child element with the given
// name and type attribute, or nil.
func (n *node) childOfType(elem, typ string) *node {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == elem && c.Type == typ {
			return c
		}
	}
	return nil
}

// text returns the element's character data with surrounding
// whitespace stripped.
func (n *node) text() string {
	return strings.TrimSpace(n.Text)
}

// parseQuad parses four whitespace-separated integers.
func parseQuad(s string) (a, b, c, d int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("want 4 integers, got %d fields", len(fields))
	}
	vals := make([]int, 4)
	for i, f := range fields {
		vals[i], err = strconv.Atoi(f)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("field %d: %w", i, err)
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// iconBox extracts the bounding box from an Icon hash. A Location
// child takes precedence and is read as an exact pixel rectangle; a
// Grid child holds a cell index plus cell size and is expanded to
// pixels. Having neither is a skip condition reported to the caller.
func iconBox(icon *node) (atlas.Box, error) {
	if loc := icon.childOfType(elemAtom, typeLocation); loc != nil {
		x, y, w, h, err := parseQuad(loc.text())
		if err != nil {
			return atlas.Box{}, fmt.Errorf("bad location: %w", err)
		}
		return atlas.Box{X: x, Y: y, W: w, H: h}, nil
	}
	if grid := icon.childOfType(elemAtom, typeGrid); grid != nil {
		col, row, w, h, err := parseQuad(grid.text())
		if err != nil {
			return atlas.Box{}, fmt.Errorf("bad grid: %w", err)
		}
		return atlas.Box{X: col * w, Y: row * h, W: w, H: h}, nil
	}
	return atlas.Box{}, errNoPlacement
}

var errNoPlacement = fmt.Errorf("no location or grid specified")

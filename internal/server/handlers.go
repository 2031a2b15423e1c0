package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/spritefold/icon-atlas-mcp/internal/synth"
	"github.com/spritefold/icon-atlas-mcp/internal/thumbnail"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "icon_resolve", "icon_thumbnail").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool failures map to JSON-RPC error codes by kind: an expected
// namespace miss returns -32002, an unserveable request -32001, and
// anything else -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		switch {
		case synth.IsNotAvailable(err):
			return s.errorResponse(req.ID, codeNotAvailable, "Not available", err.Error())
		case synth.IsNotImplemented(err):
			return s.errorResponse(req.ID, codeNotImplemented, "Not implemented", err.Error())
		default:
			return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
		}
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "icon_recognize":
		return s.handleRecognize(args)
	case "icon_resolve":
		return s.handleResolve(args)
	case "icon_children":
		return s.handleChildren(args)
	case "icon_metrics":
		return s.handleMetrics(args)
	case "icon_thumbnail":
		return s.handleThumbnail(args)
	case "icon_ideal_size":
		return s.handleIdealSize(args)
	case "atlas_stats":
		return s.handleStats(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Path Recognition ===

type pathArgs struct {
	Path string `json:"path"`
}

// RecognizeResult reports the preset category that claimed a path.
type RecognizeResult struct {
	Category string `json:"category"`
}

func (s *Server) handleRecognize(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	category, err := s.preset.Recognize(a.Path)
	if err != nil {
		return nil, err
	}
	return &RecognizeResult{Category: category}, nil
}

// === Entry Lookup ===

// EntryInfo describes one namespace entry.
type EntryInfo struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	IsFile   bool      `json:"is_file"`
	Box      entryBox  `json:"box"`
	Resource string    `json:"resource,omitempty"`
	Tooltip  string    `json:"tooltip,omitempty"`
	Size     float64   `json:"size"`
	ModTime  string    `json:"modtime"`
}

type entryBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"width"`
	H int `json:"height"`
}

func entryInfo(e *synth.Entry) *EntryInfo {
	return &EntryInfo{
		Path:     e.Path,
		Name:     e.Name,
		IsFile:   e.IsFile,
		Box:      entryBox{X: e.Box.X, Y: e.Box.Y, W: e.Box.W, H: e.Box.H},
		Resource: e.Resource,
		Tooltip:  e.Tooltip,
		Size:     e.Size(),
		ModTime:  e.ModTimeString(),
	}
}

func (s *Server) handleResolve(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	entry, err := s.tree.Resolve(a.Path)
	if err != nil {
		return nil, err
	}
	return entryInfo(entry), nil
}

// === Child Enumeration ===

type childrenArgs struct {
	Path string `json:"path"`
	Mode string `json:"mode"` // "files", "dirs" or "both"
}

// ChildrenResult lists a directory entry's children.
type ChildrenResult struct {
	Count   int          `json:"count"`
	Entries []*EntryInfo `json:"entries"`
}

func (s *Server) handleChildren(args json.RawMessage) (interface{}, error) {
	var a childrenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		a.Path = synth.RootMarker
	}

	var mode synth.ListMode
	switch a.Mode {
	case "files":
		mode = synth.ListFiles
	case "dirs":
		mode = synth.ListDirs
	case "both", "":
		mode = synth.ListBoth
	default:
		return nil, fmt.Errorf("unknown mode: %s", a.Mode)
	}

	entry, err := s.tree.Resolve(a.Path)
	if err != nil {
		return nil, err
	}

	count := entry.ChildCount(mode)
	result := &ChildrenResult{Count: count, Entries: make([]*EntryInfo, 0, count)}
	for i := 0; i < count; i++ {
		child, err := entry.ChildAt(mode, i)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, entryInfo(child))
	}
	return result, nil
}

// === Metrics ===

// MetricsResult carries the display metadata for one entry.
type MetricsResult struct {
	Label         string `json:"label"`
	Caption       string `json:"caption"`
	Tooltip       string `json:"tooltip,omitempty"`
	DominantColor string `json:"dominant_color,omitempty"`
	IdealWidth    int    `json:"ideal_width"`
	IdealHeight   int    `json:"ideal_height"`
}

func (s *Server) handleMetrics(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.preset.Metrics(a.Path, nil)
	if err != nil {
		return nil, err
	}

	w, h := m.IdealSize()
	result := &MetricsResult{
		Label:       m.Label,
		Caption:     m.Caption,
		Tooltip:     m.Tooltip,
		IdealWidth:  w,
		IdealHeight: h,
	}

	// Swatch is best-effort; a sheet that cannot be read still has
	// usable textual metrics.
	if swatch, err := m.DominantColor(); err == nil {
		result.DominantColor = swatch
	}
	return result, nil
}

// === Thumbnails ===

type thumbnailArgs struct {
	Path string `json:"path"`

	// MaxSize fits the preview inside a square when the icon is
	// bigger. Zero means no shrinking.
	MaxSize int `json:"max_size"`

	// Scale enlarges the preview by an integer factor using
	// nearest-neighbour so pixel icons stay crisp. Zero or one means
	// no enlargement.
	Scale int `json:"scale"`
}

// ThumbnailResult contains the extracted icon as an encoded image.
type ThumbnailResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleThumbnail(args json.RawMessage) (interface{}, error) {
	var a thumbnailArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	entry, err := s.tree.Resolve(a.Path)
	if err != nil {
		return nil, err
	}

	buf, err := s.ex.Extract(entry)
	if err != nil {
		return nil, err
	}
	img, err := thumbnail.ToImage(buf)
	if err != nil {
		return nil, err
	}

	img = scalePreview(img, a.MaxSize, a.Scale)

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &ThumbnailResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// scalePreview adjusts the encoded preview only; the extraction itself
// is always the exact crop. Shrinking uses Lanczos, enlargement uses
// nearest-neighbour to keep pixel icons crisp.
func scalePreview(img image.Image, maxSize, scale int) image.Image {
	if scale > 1 {
		w := img.Bounds().Dx() * scale
		h := img.Bounds().Dy() * scale
		img = transform.Resize(img, w, h, transform.NearestNeighbor)
	}
	if maxSize > 0 && (img.Bounds().Dx() > maxSize || img.Bounds().Dy() > maxSize) {
		img = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	}
	return img
}

// === Ideal Size ===

// IdealSizeResult is the preferred thumbnail size for an entry.
type IdealSizeResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleIdealSize(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	entry, err := s.tree.Resolve(a.Path)
	if err != nil {
		return nil, err
	}
	w, h := thumbnail.IdealSize(entry)
	return &IdealSizeResult{Width: w, Height: h}, nil
}

// === Stats ===

type statsArgs struct{}

// StatsResult summarizes the built namespace.
type StatsResult struct {
	Entries int `json:"entries"`
	Sheets  int `json:"sheets"`
}

func (s *Server) handleStats(args json.RawMessage) (interface{}, error) {
	var a statsArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	sheets := make(map[string]struct{})
	for _, f := range s.tree.Root.Files {
		sheets[f.Resource] = struct{}{}
	}
	return &StatsResult{
		Entries: s.tree.FileCount(),
		Sheets:  len(sheets),
	}, nil
}

package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every path-taking tool.
func pathProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": desc,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "icon_recognize",
			Description: "Check whether a path belongs to the icon namespace and return its preset category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Synthetic path, e.g. \"[IconAtlas]:save\""),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_resolve",
			Description: "Resolve a synthetic path to its namespace entry (name, bounding box, sprite sheet, modification time).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Synthetic path; \"[IconAtlas]\" or \"[IconAtlas]:\" is the root"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_children",
			Description: "List the children of a directory entry. In both mode directories order before files.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Synthetic path of a directory entry; defaults to the root"),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"files", "dirs", "both"},
						"description": "Which child kinds to list (default both)",
					},
				},
			},
		},
		{
			Name:        "icon_metrics",
			Description: "Build display metrics for an entry: label, bounding-box caption, tooltip, dominant color and ideal thumbnail size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Synthetic path of an icon entry"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_thumbnail",
			Description: "Extract an icon's exact crop out of its sprite sheet and return it as base64-encoded PNG. Optional preview scaling never changes the extraction itself.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Synthetic path of an icon entry"),
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Fit the preview within this square when larger (0 = no shrinking)",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer enlargement factor, nearest-neighbour (0 or 1 = none)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_ideal_size",
			Description: "Return the ideal thumbnail size for an entry: the icon's native width and height.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Synthetic path of an icon entry"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "atlas_stats",
			Description: "Summarize the built namespace: entry count and number of distinct sprite sheets.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

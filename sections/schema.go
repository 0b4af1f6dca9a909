package sections

// ContentSchema documents the JSON shape accepted for a stored page content
// array. The store validates fetched documents against it before exposing
// them; violations degrade to an empty section list rather than an error.
var ContentSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"type"},
		"properties": map[string]any{
			"id":          map[string]any{"type": []string{"string", "number"}},
			"type":        map[string]any{"type": "string"},
			"template_id": map[string]any{"type": "string"},
			"content": map[string]any{
				"type":                 "object",
				"additionalProperties": true,
			},
			"order": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
		},
		"additionalProperties": true,
	},
}

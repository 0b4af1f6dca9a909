// Package editor implements the generic customize-panel contract: the set of
// controls shown for a section is derived from which property names are
// present in its working bag, not from a per-type form definition. Each
// recognized name maps to a declared field descriptor, so new templates can
// introduce properties without editor changes as long as the names follow the
// existing conventions.
package editor

import "strings"

// Kind enumerates the control types the panel can render.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindEnum   Kind = "enum"
	KindColor  Kind = "color"
	KindToggle Kind = "toggle"
	KindList   Kind = "list"
)

// Descriptor declares how a property name renders and which constraints its
// control enforces.
type Descriptor struct {
	Kind    Kind
	Options []string
	Min     float64
	Max     float64
	Step    float64
}

// Field is one editable control resolved against a concrete working bag.
type Field struct {
	Name    string
	Kind    Kind
	Value   any
	Options []string
	Min     float64
	Max     float64
	Step    float64
}

// fieldOrder fixes the display order of recognized properties. Colors are
// appended after these, sorted by name.
var fieldOrder = []string{
	"title",
	"subtitle",
	"text",
	"buttonText",
	"layout",
	"images",
	"columns",
	"autoScroll",
	"scrollInterval",
	"align",
	"fontWeight",
	"textTransform",
	"fontSize",
	"lineHeight",
	"letterSpacing",
}

var descriptors = map[string]Descriptor{
	"title":      {Kind: KindText},
	"subtitle":   {Kind: KindText},
	"text":       {Kind: KindText},
	"buttonText": {Kind: KindText},

	"fontSize":      {Kind: KindNumber, Min: 8, Max: 96, Step: 1},
	"lineHeight":    {Kind: KindNumber, Min: 0.8, Max: 3, Step: 0.1},
	"letterSpacing": {Kind: KindNumber, Min: -2, Max: 10, Step: 0.5},

	"align":         {Kind: KindEnum, Options: []string{"left", "center", "right"}},
	"fontWeight":    {Kind: KindEnum, Options: []string{"light", "normal", "bold"}},
	"textTransform": {Kind: KindEnum, Options: []string{"none", "uppercase", "lowercase", "capitalize"}},
	"layout":        {Kind: KindEnum, Options: []string{"grid", "carousel"}},

	"autoScroll":     {Kind: KindToggle},
	"scrollInterval": {Kind: KindNumber, Min: 2, Max: 5, Step: 1},

	"images": {Kind: KindList},
}

// colorProperty reports whether a property name follows the color-swatch
// naming convention.
func colorProperty(name string) bool {
	return strings.HasSuffix(name, "Color")
}

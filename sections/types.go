package sections

import (
	"github.com/google/uuid"
)

// Type identifies the kind of content block a section renders as.
type Type string

const (
	TypeHero      Type = "hero"
	TypeHeading   Type = "heading"
	TypeParagraph Type = "paragraph"
	TypeGallery   Type = "gallery"
)

// Types lists the known section types in display order.
func Types() []Type {
	return []Type{TypeHero, TypeHeading, TypeParagraph, TypeGallery}
}

// Valid reports whether the type belongs to the known set.
func (t Type) Valid() bool {
	switch t {
	case TypeHero, TypeHeading, TypeParagraph, TypeGallery:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// PropertyBag is the open mapping of named values attached to a section.
// The property editor binds purely on property name, so two properties must
// never share a name with different semantic meaning.
type PropertyBag map[string]any

// Clone returns a deep copy covering nested maps and slices. Mutating the
// copy never touches the original bag.
func (b PropertyBag) Clone() PropertyBag {
	if b == nil {
		return nil
	}
	out := make(PropertyBag, len(b))
	for key, value := range b {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = cloneValue(v)
		}
		return out
	case PropertyBag:
		return map[string]any(typed.Clone())
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = cloneValue(v)
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = cloneValue(map[string]any(v))
		}
		return out
	default:
		return value
	}
}

// Section is one content block on a page. ID is generated at creation time
// and stays unique within its document; Type is fixed at creation; Order is
// the zero-based position among siblings, dense and contiguous after every
// mutation.
type Section struct {
	ID         uuid.UUID   `json:"id"`
	Type       Type        `json:"type"`
	TemplateID string      `json:"template_id,omitempty"`
	Content    PropertyBag `json:"content"`
	Order      int         `json:"order"`
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Content = s.Content.Clone()
	return &copied
}

// CloneList deep-copies an ordered section list.
func CloneList(list []*Section) []*Section {
	if list == nil {
		return nil
	}
	out := make([]*Section, len(list))
	for i, section := range list {
		out[i] = section.Clone()
	}
	return out
}

// Document is the ordered collection of sections for a page. Fields carries
// page attributes other than content so a full save can pass them through
// untouched.
type Document struct {
	ID       uuid.UUID
	Sections []*Section
	Fields   map[string]any
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	copied := &Document{
		ID:       d.ID,
		Sections: CloneList(d.Sections),
	}
	if d.Fields != nil {
		copied.Fields = make(map[string]any, len(d.Fields))
		for k, v := range d.Fields {
			copied.Fields[k] = cloneValue(v)
		}
	}
	return copied
}

package templates

import (
	"github.com/goliatone/go-composer/sections"
)

// Builtin assembles the catalog of built-in section templates. Hosts can
// extend the returned catalog with Register or LoadDir before handing it to
// the composer module.
func Builtin() *Catalog {
	catalog := NewCatalog()

	mustRegister(catalog, Template{
		ID:          "banner-classic",
		SectionType: sections.TypeHero,
		Name:        "Classic Banner",
		Description: "Full-width banner with title, subtitle, and call to action over a background image.",
		Defaults: sections.PropertyBag{
			"title":           "Welcome",
			"subtitle":        "Tell visitors what this page is about",
			"buttonText":      "Learn more",
			"buttonColor":     "#1f6feb",
			"titleColor":      "#ffffff",
			"backgroundColor": "#0b1f3a",
			"imageUrl":        "",
			"align":           "center",
			"fontSize":        32,
		},
	})
	mustRegister(catalog, Template{
		ID:          "banner-minimal",
		SectionType: sections.TypeHero,
		Name:        "Minimal Banner",
		Description: "Single headline on a solid color, no call to action.",
		Defaults: sections.PropertyBag{
			"title":           "Page headline",
			"titleColor":      "#111111",
			"backgroundColor": "#f5f5f4",
			"align":           "center",
			"fontSize":        28,
		},
	})
	mustRegister(catalog, Template{
		ID:          "banner-cta",
		SectionType: sections.TypeHero,
		Name:        "Call To Action",
		Description: "Headline and subtitle with a prominent action button.",
		Defaults: sections.PropertyBag{
			"title":       "Get involved",
			"subtitle":    "Join the campaign today",
			"buttonText":  "Sign up",
			"buttonColor": "#16a34a",
			"titleColor":  "#0b1f3a",
			"align":       "left",
			"fontWeight":  "bold",
			"fontSize":    30,
		},
	})

	mustRegister(catalog, Template{
		ID:          "heading-standard",
		SectionType: sections.TypeHeading,
		Name:        "Standard Heading",
		Defaults: sections.PropertyBag{
			"text":          "Section title",
			"fontSize":      24,
			"fontWeight":    "bold",
			"align":         "left",
			"textColor":     "#111111",
			"textTransform": "none",
			"letterSpacing": 0,
			"lineHeight":    1.2,
		},
	})
	mustRegister(catalog, Template{
		ID:          "heading-eyebrow",
		SectionType: sections.TypeHeading,
		Name:        "Eyebrow Heading",
		Description: "Small uppercase label placed above a larger block.",
		Defaults: sections.PropertyBag{
			"text":          "Overline",
			"fontSize":      14,
			"textTransform": "uppercase",
			"letterSpacing": 2,
			"textColor":     "#6b7280",
			"align":         "left",
		},
	})

	mustRegister(catalog, Template{
		ID:          "paragraph-body",
		SectionType: sections.TypeParagraph,
		Name:        "Body Paragraph",
		Defaults: sections.PropertyBag{
			"text":       "Write your content here.",
			"fontSize":   16,
			"lineHeight": 1.6,
			"align":      "left",
			"textColor":  "#333333",
		},
	})
	mustRegister(catalog, Template{
		ID:          "paragraph-lead",
		SectionType: sections.TypeParagraph,
		Name:        "Lead Paragraph",
		Description: "Larger opening paragraph for the top of a page.",
		Defaults: sections.PropertyBag{
			"text":       "Introduce the page with a short lead.",
			"fontSize":   20,
			"lineHeight": 1.5,
			"fontWeight": "light",
			"align":      "left",
			"textColor":  "#222222",
		},
	})

	mustRegister(catalog, Template{
		ID:          "gallery-grid",
		SectionType: sections.TypeGallery,
		Name:        "Image Grid",
		Defaults: sections.PropertyBag{
			"layout":  "grid",
			"columns": 2,
			"images": []any{
				map[string]any{"url": "", "title": "First image", "description": ""},
				map[string]any{"url": "", "title": "Second image", "description": ""},
			},
		},
	})
	mustRegister(catalog, Template{
		ID:          "gallery-carousel",
		SectionType: sections.TypeGallery,
		Name:        "Image Carousel",
		Description: "Sliding gallery with optional auto-scroll.",
		Defaults: sections.PropertyBag{
			"layout":         "carousel",
			"columns":        3,
			"autoScroll":     true,
			"scrollInterval": 3,
			"images": []any{
				map[string]any{"url": "", "title": "First slide", "description": ""},
				map[string]any{"url": "", "title": "Second slide", "description": ""},
				map[string]any{"url": "", "title": "Third slide", "description": ""},
			},
		},
	})

	return catalog
}

func mustRegister(catalog *Catalog, t Template) {
	if err := catalog.Register(t); err != nil {
		panic(err)
	}
}

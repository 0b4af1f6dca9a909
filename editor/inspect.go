package editor

import (
	"sort"

	"github.com/goliatone/go-composer/sections"
)

const (
	// narrowViewportWidth is the threshold below which carousel rendering is
	// capped, in logical pixels.
	narrowViewportWidth = 600
	narrowCardCap       = 2

	gridColumnsMax   = 4
	carouselCardsMax = 5
)

// Inspect resolves the editable controls for a working bag. Presence of a
// property name determines whether its control appears; absent names are
// omitted entirely and unrecognized names are ignored.
//
// Gallery sections carry a state-dependent control set gated on the current
// layout value: grid layouts expose a columns-per-row control, carousel
// layouts expose cards-per-slide plus auto-scroll and scroll-interval.
func Inspect(sectionType sections.Type, bag sections.PropertyBag) []Field {
	if len(bag) == 0 {
		return nil
	}

	layout, _ := bag["layout"].(string)

	fields := make([]Field, 0, len(bag))
	for _, name := range fieldOrder {
		value, present := bag[name]
		if !present {
			continue
		}
		if skip(sectionType, layout, name) {
			continue
		}
		fields = append(fields, resolve(name, value, layout))
	}

	colors := make([]string, 0, 2)
	for name := range bag {
		if colorProperty(name) {
			colors = append(colors, name)
		}
	}
	sort.Strings(colors)
	for _, name := range colors {
		fields = append(fields, Field{Name: name, Kind: KindColor, Value: bag[name]})
	}

	return fields
}

// skip applies the gating rules: list editing is a gallery concern, and the
// carousel-only controls disappear under other layouts.
func skip(sectionType sections.Type, layout, name string) bool {
	switch name {
	case "images":
		return sectionType != sections.TypeGallery
	case "autoScroll", "scrollInterval":
		return layout != "carousel"
	}
	return false
}

func resolve(name string, value any, layout string) Field {
	desc := descriptors[name]
	field := Field{
		Name:    name,
		Kind:    desc.Kind,
		Value:   value,
		Options: desc.Options,
		Min:     desc.Min,
		Max:     desc.Max,
		Step:    desc.Step,
	}

	// The columns control is shared between layouts but its bounds differ:
	// columns-per-row for grids, cards-per-slide for carousels.
	if name == "columns" {
		field.Kind = KindNumber
		field.Min = 1
		field.Step = 1
		if layout == "carousel" {
			field.Max = carouselCardsMax
		} else {
			field.Max = gridColumnsMax
		}
	}

	return field
}

// EffectiveCardsPerSlide returns the card count a carousel should render for
// the given viewport. Narrow viewports cap the value at two; the stored
// columns property is never modified.
func EffectiveCardsPerSlide(bag sections.PropertyBag, viewportWidth int) int {
	columns := int(toFloat(bag["columns"], 1))
	if columns < 1 {
		columns = 1
	}
	if columns > carouselCardsMax {
		columns = carouselCardsMax
	}
	if viewportWidth > 0 && viewportWidth < narrowViewportWidth && columns > narrowCardCap {
		return narrowCardCap
	}
	return columns
}

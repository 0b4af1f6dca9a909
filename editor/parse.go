package editor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ParseNumber converts raw numeric input into a float. Unparsable input
// yields the fallback value instead of an error: the panel never rejects an
// edit over a half-typed number.
func ParseNumber(raw string, fallback float64) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return value
}

// Validate checks a candidate value against the field's declared constraints.
func Validate(field Field, value any) error {
	switch field.Kind {
	case KindNumber:
		number, ok := numeric(value)
		if !ok {
			return fmt.Errorf("editor: %s expects a number", field.Name)
		}
		return validation.Validate(number,
			validation.Min(field.Min),
			validation.Max(field.Max),
		)
	case KindEnum:
		choice, _ := value.(string)
		return validation.Validate(choice,
			validation.Required,
			validation.In(anySlice(field.Options)...),
		)
	case KindColor:
		swatch, _ := value.(string)
		return validation.Validate(swatch,
			validation.Required,
			validation.Match(colorPattern),
		)
	case KindToggle:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("editor: %s expects a boolean", field.Name)
		}
		return nil
	default:
		return nil
	}
}

func numeric(value any) (float64, bool) {
	f, ok := value.(float64)
	if ok {
		return f, true
	}
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func toFloat(value any, fallback float64) float64 {
	if number, ok := numeric(value); ok {
		return number
	}
	return fallback
}

func anySlice(options []string) []any {
	out := make([]any, len(options))
	for i, option := range options {
		out[i] = option
	}
	return out
}

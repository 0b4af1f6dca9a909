package editor

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// previewEngine is stateless, so a single instance serves all renders.
var previewEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// RenderMarkdown converts a paragraph section's text into preview HTML.
func RenderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := previewEngine.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("editor: render markdown: %w", err)
	}
	return buf.String(), nil
}

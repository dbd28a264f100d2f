package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders text for a terminal of the given width.
// Non-terminal output and rendering failures return text unchanged.
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" || !IsTTY() {
		return text
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

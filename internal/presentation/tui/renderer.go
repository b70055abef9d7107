package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// LogMarkdown formats the output log as a markdown document.
func LogMarkdown(name string, lines []string) string {
	var b strings.Builder
	b.WriteString("# " + name + "\n\n")
	if len(lines) == 0 {
		b.WriteString("_empty_\n")
		return b.String()
	}
	b.WriteString("```\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

// RenderLog renders the log with render, falling back to the raw markdown.
func RenderLog(render func(string) (string, error), name string, lines []string) string {
	md := LogMarkdown(name, lines)
	if render == nil {
		return md
	}
	out, err := render(md)
	if err != nil {
		return md
	}
	return out
}

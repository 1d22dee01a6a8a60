// Package report renders inspection results for terminal consumption.
// Results arrive as domain structs and leave as markdown, optionally
// styled for the terminal.
package report

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour,
// auto-detecting the terminal background.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Render styles markdown when stdout is a terminal and falls back to the
// raw markdown when piped.
func Render(markdown string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return markdown
	}
	styled, err := NewRenderer()(markdown)
	if err != nil {
		return markdown
	}
	return styled
}

// HealthBadge renders a colored one-word verdict for the summary line.
func HealthBadge(healthy bool) string {
	p := termenv.ColorProfile()
	if healthy {
		return termenv.String("healthy").Foreground(p.Color("#22c55e")).Bold().String()
	}
	return termenv.String("issues found").Foreground(p.Color("#ef4444")).Bold().String()
}

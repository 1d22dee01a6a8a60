package report

import (
	"fmt"
	"strings"

	"github.com/glimpse-dev/glimpse/pkg/domain"
)

// Diagnostic renders the aggregate health scan as markdown.
func Diagnostic(d *domain.DiagnosticResult) string {
	var b strings.Builder
	b.WriteString("# Diagnostic Report\n\n")
	fmt.Fprintf(&b, "**Summary:** %s\n\n", d.Summary)
	fmt.Fprintf(&b, "Viewport: %gx%g\n\n", d.Viewport.Width, d.Viewport.Height)

	if len(d.Issues) > 0 {
		b.WriteString("## Issues\n\n")
		for _, issue := range d.Issues {
			fmt.Fprintf(&b, "- `%s` **%s**: %s\n", issue.Selector, issue.Kind, issue.Detail)
		}
		b.WriteString("\n")
	}

	if len(d.ZIndexStack) > 0 {
		b.WriteString("## Stacking (top first)\n\n")
		b.WriteString("| Selector | z-index |\n|---|---|\n")
		for _, entry := range d.ZIndexStack {
			fmt.Fprintf(&b, "| `%s` | %d |\n", entry.Selector, entry.ZIndex)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Element renders a single-element inspection as markdown.
func Element(r *domain.ElementReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Inspect `%s`\n\n", r.Selector)

	verdict := "visible"
	if !r.Visible {
		verdict = "not visible"
	}
	fmt.Fprintf(&b, "**Verdict:** %s\n\n", verdict)

	fmt.Fprintf(&b, "- Rect: (%g, %g) %gx%g\n", r.Rect.X, r.Rect.Y, r.Rect.Width, r.Rect.Height)
	fmt.Fprintf(&b, "- Display: `%s`, visibility: `%s`, position: `%s`, opacity: %g\n",
		r.Style.Display, r.Style.Visibility, r.Style.Position, r.Style.Opacity)
	if r.Style.ZIndex != nil {
		fmt.Fprintf(&b, "- z-index: %d\n", *r.Style.ZIndex)
	}
	b.WriteString("\n")

	if len(r.Issues) > 0 {
		b.WriteString("## Findings\n\n")
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "- **%s**: %s\n", issue.Kind, issue.Detail)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Classes renders a validate-classes run as markdown.
func Classes(r *domain.ClassReport) string {
	var b strings.Builder
	b.WriteString("# Class Validation\n\n")
	fmt.Fprintf(&b, "%d checked, %d found, %d missing\n\n", r.Total, r.Found, r.Missing)

	for _, status := range r.Classes {
		if status.Found {
			fmt.Fprintf(&b, "- ✓ `%s`: `%s`\n", status.Name, status.Rule)
		} else {
			fmt.Fprintf(&b, "- ✗ `%s`\n", status.Name)
		}
	}
	b.WriteString("\n")

	if len(r.MissingClasses) > 0 {
		fmt.Fprintf(&b, "**Missing:** %s\n", strings.Join(r.MissingClasses, ", "))
	}
	return b.String()
}

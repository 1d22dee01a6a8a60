package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Rect is an element's bounding rectangle in viewport coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Viewport is the visible document area.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ComputedStyle is the subset of resolved style the diagnostics need.
type ComputedStyle struct {
	Display    string  `json:"display"`
	Visibility string  `json:"visibility"`
	Position   string  `json:"position"`
	Opacity    float64 `json:"opacity"`
	ZIndex     *int    `json:"z_index,omitempty"`
}

// Positioned reports whether the element participates in out-of-viewport
// and z-index stacking checks.
func (s ComputedStyle) Positioned() bool {
	return s.Position == "fixed" || s.Position == "absolute"
}

// Hidden reports whether the element is hidden by design.
func (s ComputedStyle) Hidden() bool {
	return s.Display == "none" || s.Visibility == "hidden"
}

// IssueKind classifies a visibility problem. Each rule is checked
// independently; all findings are reported.
type IssueKind string

const (
	IssueOutOfViewport    IssueKind = "out_of_viewport"
	IssueZeroDimensions   IssueKind = "zero_dimensions"
	IssueDisplayNone      IssueKind = "display_none"
	IssueVisibilityHidden IssueKind = "visibility_hidden"
	IssueOpacityZero      IssueKind = "opacity_zero"
	IssueClassesMissing   IssueKind = "css_classes_missing"
)

// Issue is a single classified finding.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Selector string    `json:"selector,omitempty"`
	Detail   string    `json:"detail"`
}

// ZIndexEntry is one element of the stacking debug view.
type ZIndexEntry struct {
	Selector string `json:"selector"`
	ZIndex   int    `json:"z_index"`
}

// ElementReport is the single-element inspection result.
type ElementReport struct {
	Selector string        `json:"selector"`
	Rect     Rect          `json:"rect"`
	Style    ComputedStyle `json:"style"`
	Visible  bool          `json:"visible"`
	Issues   []Issue       `json:"issues"`
}

// DiagnosticResult is the aggregate document health scan. It is computed
// fresh per request and never cached.
type DiagnosticResult struct {
	Healthy     bool          `json:"healthy"`
	Viewport    Viewport      `json:"viewport"`
	Issues      []Issue       `json:"issues"`
	ZIndexStack []ZIndexEntry `json:"z_index_stack"`
	Summary     string        `json:"summary"`
}

// Summarize fills Healthy and Summary from the collected issues.
func (d *DiagnosticResult) Summarize() {
	d.Healthy = len(d.Issues) == 0
	if d.Healthy {
		d.Summary = "no issues detected"
		return
	}
	counts := map[IssueKind]int{}
	for _, issue := range d.Issues {
		counts[issue.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[IssueKind(k)]))
	}
	d.Summary = fmt.Sprintf("%d issue(s): %s", len(d.Issues), strings.Join(parts, ", "))
}

package ports

import (
	"context"

	"github.com/glimpse-dev/glimpse/pkg/domain"
)

// Document is the host's view of the live rendered document. It must only
// be accessed from the evaluation loop; the bridge never shares it across
// goroutines.
type Document interface {
	// Root returns the document root element (typically body).
	Root() Element
	// Find returns the first element matching the CSS selector, or
	// domain.ErrNotFound when nothing matches. A malformed selector
	// yields domain.ErrInvalidParams.
	Find(selector string) (Element, error)
	// FindAll returns every element matching the CSS selector, in
	// document order.
	FindAll(selector string) ([]Element, error)
	// Viewport returns the current visible area.
	Viewport() domain.Viewport
	// StyleSheets returns every style sheet attached to the document,
	// accessible or not.
	StyleSheets() []StyleSheet
}

// Element is a single node of the live document: either an element proper
// or a text node.
type Element interface {
	// IsText reports whether this is a text node. Text nodes only answer
	// Text meaningfully.
	IsText() bool
	// Text returns the raw text of a text node, or "" for elements.
	Text() string

	Tag() string
	ID() string
	Classes() []string
	Attr(name string) (string, bool)
	Children() []Element

	// TextContent returns the concatenated descendant text.
	TextContent() string
	// InnerHTML returns the serialized child markup.
	InnerHTML() string
	// Rect returns the bounding rectangle in viewport coordinates.
	Rect() domain.Rect
	// Style returns the resolved style subset the diagnostics need.
	Style() domain.ComputedStyle
	// Path returns a short selector-like description for reports,
	// e.g. "div#app.container".
	Path() string
}

// StyleRule is one rule of a style sheet.
type StyleRule struct {
	Selector string
	Text     string
}

// StyleSheet exposes the rules of one attached sheet. Inaccessible sheets
// (cross-origin or otherwise unreadable) report Accessible false and are
// skipped by scans rather than failing them.
type StyleSheet interface {
	Accessible() bool
	Rules() []StyleRule
}

// ScriptEvaluator executes raw script text inside the document context.
// Hosts without a script engine may leave it nil; the raw-eval path then
// reports an evaluation error.
type ScriptEvaluator interface {
	Eval(ctx context.Context, script string) (string, error)
}

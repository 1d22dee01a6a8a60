// Package htmldoc implements ports.Document over a parsed HTML tree.
//
// It is the document backend of the demo host and the test suites. Style
// resolution and geometry are approximations computed from style rules and
// inline styles; a real GUI host replaces this adapter with one backed by
// its live renderer.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

const (
	defaultViewportWidth  = 800
	defaultViewportHeight = 600
)

// Document is an HTML-backed ports.Document. It is not safe for concurrent
// use; like any live document it belongs to a single evaluation loop.
type Document struct {
	root     *html.Node
	viewport domain.Viewport
	sheets   []ports.StyleSheet
	rules    []compiledRule
}

// Option configures a parsed document.
type Option func(*Document)

// WithViewport sets the visible area reported to diagnostics.
func WithViewport(width, height float64) Option {
	return func(d *Document) {
		d.viewport = domain.Viewport{Width: width, Height: height}
	}
}

// Parse reads an HTML document and prepares its style sheets. <style>
// elements become accessible sheets; <link rel="stylesheet"> references
// external resources this adapter cannot read and become inaccessible
// sheets, which scans skip.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{
		root:     findElement(node, "body"),
		viewport: domain.Viewport{Width: defaultViewportWidth, Height: defaultViewportHeight},
	}
	if doc.root == nil {
		doc.root = node
	}
	for _, opt := range opts {
		opt(doc)
	}

	doc.collectSheets(node)
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Root returns the body element.
func (d *Document) Root() ports.Element {
	return &element{n: d.root, doc: d}
}

// Find returns the first match of a CSS selector.
func (d *Document) Find(selector string) (ports.Element, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: bad selector %q: %v", domain.ErrInvalidParams, selector, err)
	}
	n := cascadia.Query(d.root, sel)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, selector)
	}
	return &element{n: n, doc: d}, nil
}

// FindAll returns every match of a CSS selector in document order.
func (d *Document) FindAll(selector string) ([]ports.Element, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: bad selector %q: %v", domain.ErrInvalidParams, selector, err)
	}
	nodes := cascadia.QueryAll(d.root, sel)
	elements := make([]ports.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &element{n: n, doc: d})
	}
	return elements, nil
}

// Viewport returns the configured visible area.
func (d *Document) Viewport() domain.Viewport {
	return d.viewport
}

// StyleSheets returns every attached sheet, accessible or not.
func (d *Document) StyleSheets() []ports.StyleSheet {
	return d.sheets
}

func (d *Document) collectSheets(node *html.Node) {
	walk(node, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "style":
			rules := parseCSS(textOf(n))
			d.sheets = append(d.sheets, &inlineSheet{rules: rules})
			d.rules = append(d.rules, compileRules(rules)...)
		case "link":
			if strings.EqualFold(attrValue(n, "rel"), "stylesheet") {
				d.sheets = append(d.sheets, &externalSheet{href: attrValue(n, "href")})
			}
		}
	})
}

// inlineSheet is a <style> element: always accessible.
type inlineSheet struct {
	rules []ports.StyleRule
}

func (s *inlineSheet) Accessible() bool         { return true }
func (s *inlineSheet) Rules() []ports.StyleRule { return s.rules }

// externalSheet is a <link rel=stylesheet>: this adapter cannot read it.
type externalSheet struct {
	href string
}

func (s *externalSheet) Accessible() bool         { return false }
func (s *externalSheet) Rules() []ports.StyleRule { return nil }

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

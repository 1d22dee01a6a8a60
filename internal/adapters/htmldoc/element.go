package htmldoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// element wraps one html.Node together with the document that resolves
// its style and geometry.
type element struct {
	n   *html.Node
	doc *Document
}

var _ ports.Element = (*element)(nil)

func (e *element) IsText() bool {
	return e.n.Type == html.TextNode
}

func (e *element) Text() string {
	if e.n.Type == html.TextNode {
		return e.n.Data
	}
	return ""
}

func (e *element) Tag() string {
	if e.n.Type == html.ElementNode {
		return e.n.Data
	}
	return ""
}

func (e *element) ID() string {
	return attrValue(e.n, "id")
}

func (e *element) Classes() []string {
	return strings.Fields(attrValue(e.n, "class"))
}

func (e *element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Children returns element and text child nodes; comments and doctypes
// are invisible to the projection.
func (e *element) Children() []ports.Element {
	var children []ports.Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode || c.Type == html.TextNode {
			children = append(children, &element{n: c, doc: e.doc})
		}
	}
	return children
}

func (e *element) TextContent() string {
	return textOf(e.n)
}

func (e *element) InnerHTML() string {
	var b strings.Builder
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		// Render cannot fail on a strings.Builder.
		_ = html.Render(&b, c)
	}
	return b.String()
}

func (e *element) Rect() domain.Rect {
	if e.n.Type != html.ElementNode {
		return domain.Rect{}
	}
	return e.doc.boundingRect(e.n)
}

func (e *element) Style() domain.ComputedStyle {
	if e.n.Type != html.ElementNode {
		return domain.ComputedStyle{Display: "inline", Visibility: "visible", Opacity: 1}
	}
	return e.doc.computedStyle(e.n)
}

// Path renders a short selector-like description, e.g. "div#app.container".
func (e *element) Path() string {
	if e.n.Type != html.ElementNode {
		return "#text"
	}
	var b strings.Builder
	b.WriteString(e.n.Data)
	if id := e.ID(); id != "" {
		b.WriteString("#")
		b.WriteString(id)
	}
	for _, class := range e.Classes() {
		b.WriteString(".")
		b.WriteString(class)
	}
	return b.String()
}

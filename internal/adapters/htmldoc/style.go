package htmldoc

import (
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// compiledRule pairs a parsed rule with its cascadia matcher. Rules whose
// selector cascadia cannot parse (pseudo-elements and the like) are kept
// for class scans but excluded from style resolution.
type compiledRule struct {
	sel   cascadia.Sel
	decls map[string]string
}

func compileRules(rules []ports.StyleRule) []compiledRule {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		sel, err := cascadia.Parse(rule.Selector)
		if err != nil {
			continue
		}
		compiled = append(compiled, compiledRule{sel: sel, decls: parseDeclarations(rule.Text)})
	}
	return compiled
}

// parseCSS splits a sheet into rules. It is a flat scanner: at-rule blocks
// and nesting are beyond what the diagnostics need.
func parseCSS(css string) []ports.StyleRule {
	css = stripComments(css)
	var rules []ports.StyleRule
	for _, chunk := range strings.Split(css, "}") {
		selPart, body, ok := strings.Cut(chunk, "{")
		if !ok {
			continue
		}
		body = strings.TrimSpace(body)
		for _, sel := range strings.Split(selPart, ",") {
			sel = strings.TrimSpace(sel)
			if sel == "" || strings.HasPrefix(sel, "@") {
				continue
			}
			rules = append(rules, ports.StyleRule{Selector: sel, Text: body})
		}
	}
	return rules
}

func stripComments(css string) string {
	for {
		start := strings.Index(css, "/*")
		if start < 0 {
			return css
		}
		end := strings.Index(css[start+2:], "*/")
		if end < 0 {
			return css[:start]
		}
		css = css[:start] + css[start+2+end+2:]
	}
}

func parseDeclarations(body string) map[string]string {
	decls := make(map[string]string)
	for _, decl := range strings.Split(body, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		decls[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	return decls
}

// resolve computes the style subset diagnostics need: matching sheet rules
// apply in document order (later wins), inline style last.
func (d *Document) resolve(n *html.Node) map[string]string {
	props := make(map[string]string)
	for _, rule := range d.rules {
		if rule.sel.Match(n) {
			for k, v := range rule.decls {
				props[k] = v
			}
		}
	}
	for k, v := range parseDeclarations(attrValue(n, "style")) {
		props[k] = v
	}
	return props
}

func (d *Document) computedStyle(n *html.Node) domain.ComputedStyle {
	props := d.resolve(n)
	style := domain.ComputedStyle{
		Display:    "block",
		Visibility: "visible",
		Position:   "static",
		Opacity:    1,
	}
	if v, ok := props["display"]; ok {
		style.Display = v
	}
	if v, ok := props["visibility"]; ok {
		style.Visibility = v
	}
	if v, ok := props["position"]; ok {
		style.Position = v
	}
	if v, ok := props["opacity"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			style.Opacity = f
		}
	}
	if v, ok := props["z-index"]; ok {
		if z, err := strconv.Atoi(v); err == nil {
			style.ZIndex = &z
		}
	}
	return style
}

// boundingRect approximates geometry from resolved left/top/width/height
// pixel values. Elements without explicit sizes resolve to a zero rect;
// live renderers supply real layout instead.
func (d *Document) boundingRect(n *html.Node) domain.Rect {
	props := d.resolve(n)
	return domain.Rect{
		X:      pixels(props["left"]),
		Y:      pixels(props["top"]),
		Width:  pixels(props["width"]),
		Height: pixels(props["height"]),
	}
}

func pixels(v string) float64 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

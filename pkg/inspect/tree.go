package inspect

import (
	"strings"

	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// Non-content tags contribute nothing to the projection, subtrees included.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"link":     true,
	"meta":     true,
}

// Tree projects the document (or the subtree rooted at the request
// selector) into a DomNode tree. Both budgets are enforced here, not by
// the document: the emitted tree never exceeds the node budget, and no
// node other than a depth placeholder lies deeper than the depth budget.
func Tree(doc ports.Document, req domain.TreeRequest) (*domain.TreeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	root := doc.Root()
	if sel := strings.TrimSpace(req.Selector); sel != "" {
		el, err := findTarget(doc, sel)
		if err != nil {
			return nil, err
		}
		root = el
	}

	p := &projector{maxDepth: req.Depth(), maxNodes: req.Nodes()}
	tree := p.project(root, 0)
	return &domain.TreeResult{
		Root: tree,
		Stats: domain.TreeStats{
			TotalNodes: p.count,
			MaxDepth:   p.maxDepth,
			MaxNodes:   p.maxNodes,
			Truncated:  p.truncated,
		},
	}, nil
}

type projector struct {
	maxDepth  int
	maxNodes  int
	count     int
	truncated bool
}

// take claims one slot of the node budget. Refusal marks the projection
// truncated; truncation markers themselves do not consume budget.
func (p *projector) take() bool {
	if p.count >= p.maxNodes {
		p.truncated = true
		return false
	}
	p.count++
	return true
}

func (p *projector) exhausted() bool {
	return p.count >= p.maxNodes
}

func (p *projector) project(el ports.Element, depth int) *domain.DomNode {
	if el.IsText() {
		text := strings.TrimSpace(el.Text())
		if text == "" {
			return nil
		}
		if !p.take() {
			return nil
		}
		if runes := []rune(text); len(runes) > domain.MaxTextLength {
			text = string(runes[:domain.MaxTextLength]) + "…"
		}
		return &domain.DomNode{Text: text}
	}

	tag := strings.ToLower(el.Tag())
	if skippedTags[tag] {
		return nil
	}
	if !p.take() {
		return nil
	}

	node := &domain.DomNode{
		Tag:   tag,
		ID:    el.ID(),
		Class: strings.Join(el.Classes(), " "),
	}

	children := el.Children()
	if !hasProjectable(children) {
		return node
	}

	if depth >= p.maxDepth {
		// Subtree not visited; a single placeholder stands in for it.
		p.truncated = true
		node.Children = []*domain.DomNode{{Truncated: domain.TruncatedDepth}}
		return node
	}

	for i, child := range children {
		if p.exhausted() {
			p.truncated = true
			node.Children = append(node.Children, &domain.DomNode{
				Truncated:       domain.TruncatedMaxNodes,
				SkippedSiblings: len(children) - i,
			})
			break
		}
		if cn := p.project(child, depth+1); cn != nil {
			node.Children = append(node.Children, cn)
		}
	}
	return node
}

// hasProjectable reports whether any child would survive projection.
func hasProjectable(children []ports.Element) bool {
	for _, c := range children {
		if c.IsText() {
			if strings.TrimSpace(c.Text()) != "" {
				return true
			}
			continue
		}
		if !skippedTags[strings.ToLower(c.Tag())] {
			return true
		}
	}
	return false
}

package inspect

import (
	"errors"
	"strings"

	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// findTarget resolves a selector to its first match, normalizing the
// not-found case to the stable wire message.
func findTarget(doc ports.Document, selector string) (ports.Element, error) {
	el, err := doc.Find(selector)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.KindNotFound, "Selector not found: %s", selector)
		}
		return nil, err
	}
	return el, nil
}

// Query extracts a single value from the first selector match.
func Query(doc ports.Document, req domain.QueryRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	el, err := findTarget(doc, req.Selector)
	if err != nil {
		return "", err
	}

	mode, _ := domain.ParseQueryMode(string(req.Mode))
	switch mode {
	case domain.QueryText:
		return strings.TrimSpace(el.TextContent()), nil
	case domain.QueryHTML:
		return el.InnerHTML(), nil
	case domain.QueryValue:
		v, _ := el.Attr("value")
		return v, nil
	case domain.QueryAttr:
		v, ok := el.Attr(req.Attr)
		if !ok {
			return "", domain.NewError(domain.KindNotFound, "Attribute not found: %s", req.Attr)
		}
		return v, nil
	}
	return "", domain.NewError(domain.KindInternalError, "unreachable query mode %q", mode)
}

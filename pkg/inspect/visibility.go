package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// InspectElement analyzes visibility of the first selector match. Every
// rule is checked independently; all findings are reported, never
// short-circuited.
func InspectElement(doc ports.Document, req domain.InspectRequest) (*domain.ElementReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	el, err := findTarget(doc, req.Selector)
	if err != nil {
		return nil, err
	}

	issues := elementIssues(el, doc.Viewport(), classIndex(doc.StyleSheets()))
	report := &domain.ElementReport{
		Selector: req.Selector,
		Rect:     el.Rect(),
		Style:    el.Style(),
		Visible:  visible(issues),
		Issues:   issues,
	}
	if report.Issues == nil {
		report.Issues = []domain.Issue{}
	}
	return report, nil
}

// Diagnose runs the aggregate visibility/health scan over the whole
// document, including the z-index stacking debug view.
func Diagnose(doc ports.Document) (*domain.DiagnosticResult, error) {
	result := &domain.DiagnosticResult{
		Viewport:    doc.Viewport(),
		Issues:      []domain.Issue{},
		ZIndexStack: []domain.ZIndexEntry{},
	}

	index := classIndex(doc.StyleSheets())
	walkElements(doc.Root(), func(el ports.Element) {
		result.Issues = append(result.Issues, elementIssues(el, result.Viewport, index)...)

		style := el.Style()
		if style.Positioned() && style.ZIndex != nil {
			result.ZIndexStack = append(result.ZIndexStack, domain.ZIndexEntry{
				Selector: el.Path(),
				ZIndex:   *style.ZIndex,
			})
		}
	})

	sort.SliceStable(result.ZIndexStack, func(i, j int) bool {
		return result.ZIndexStack[i].ZIndex > result.ZIndexStack[j].ZIndex
	})
	if len(result.ZIndexStack) > 10 {
		result.ZIndexStack = result.ZIndexStack[:10]
	}

	result.Summarize()
	return result, nil
}

// walkElements visits every element node in document order, skipping text
// nodes and non-content tags.
func walkElements(el ports.Element, visit func(ports.Element)) {
	if el.IsText() || skippedTags[strings.ToLower(el.Tag())] {
		return
	}
	visit(el)
	for _, child := range el.Children() {
		walkElements(child, visit)
	}
}

// visible reports whether no visibility-affecting issue was found.
// Missing class definitions do not by themselves make an element invisible.
func visible(issues []domain.Issue) bool {
	for _, issue := range issues {
		if issue.Kind != domain.IssueClassesMissing {
			return false
		}
	}
	return true
}

func elementIssues(el ports.Element, vp domain.Viewport, index map[string]string) []domain.Issue {
	var issues []domain.Issue
	style := el.Style()
	rect := el.Rect()
	path := el.Path()

	// Only elements taken out of normal flow can end up entirely outside
	// the viewport.
	if style.Positioned() {
		if rect.Y >= vp.Height || rect.Bottom() <= 0 || rect.X >= vp.Width || rect.Right() <= 0 {
			issues = append(issues, domain.Issue{
				Kind:     domain.IssueOutOfViewport,
				Selector: path,
				Detail: fmt.Sprintf("rect (%.0f,%.0f %gx%g) lies outside viewport %gx%g",
					rect.X, rect.Y, rect.Width, rect.Height, vp.Width, vp.Height),
			})
		}
	}

	// Zero size only matters when the element has content to show and is
	// not hidden by design.
	if (rect.Width == 0 || rect.Height == 0) && hasContent(el) && !style.Hidden() {
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueZeroDimensions,
			Selector: path,
			Detail:   fmt.Sprintf("element has content but resolves to %gx%g", rect.Width, rect.Height),
		})
	}

	if style.Display == "none" {
		issues = append(issues, domain.Issue{Kind: domain.IssueDisplayNone, Selector: path, Detail: "display: none"})
	}
	if style.Visibility == "hidden" {
		issues = append(issues, domain.Issue{Kind: domain.IssueVisibilityHidden, Selector: path, Detail: "visibility: hidden"})
	}
	if style.Opacity == 0 {
		issues = append(issues, domain.Issue{Kind: domain.IssueOpacityZero, Selector: path, Detail: "opacity: 0"})
	}

	if missing := missingClassTokens(el, index); len(missing) > 0 {
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueClassesMissing,
			Selector: path,
			Detail:   "no style rule defines: " + strings.Join(missing, ", "),
		})
	}
	return issues
}

// missingClassTokens returns element class tokens that match no scanned
// rule and do not look dynamically generated.
func missingClassTokens(el ports.Element, index map[string]string) []string {
	var missing []string
	for _, class := range el.Classes() {
		if _, ok := index[class]; ok {
			continue
		}
		if looksGenerated(class) {
			continue
		}
		missing = append(missing, class)
	}
	return missing
}

func hasContent(el ports.Element) bool {
	for _, child := range el.Children() {
		if !child.IsText() {
			return true
		}
	}
	return strings.TrimSpace(el.TextContent()) != ""
}

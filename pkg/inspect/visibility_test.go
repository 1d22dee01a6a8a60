package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimpse-dev/glimpse/internal/adapters/htmldoc"
	"github.com/glimpse-dev/glimpse/pkg/domain"
)

const visibilityPage = `<html><head>
<style>
.box { width: 100px; height: 50px; }
.gone { display: none; }
.ghost { visibility: hidden; width: 10px; height: 10px; }
.faded { opacity: 0; width: 10px; height: 10px; }
.offscreen { position: absolute; left: 2000px; top: 0px; width: 50px; height: 50px; }
.overlay { position: fixed; left: 0px; top: 0px; width: 100px; height: 100px; z-index: 30; }
.modal { position: absolute; left: 10px; top: 10px; width: 50px; height: 50px; z-index: 100; }
</style>
</head><body>
	<div id="ok" class="box">fine</div>
	<div id="gone" class="gone">hidden text</div>
	<div id="ghost" class="ghost">ghost</div>
	<div id="faded" class="faded">faded</div>
	<div id="offscreen" class="offscreen">away</div>
	<div id="flat" class="box" style="width: 0px">squeezed</div>
	<div id="overlay" class="overlay"></div>
	<div id="modal" class="modal"></div>
	<div id="unstyled" class="mystery box">styled?</div>
</body></html>`

func issueKinds(issues []domain.Issue) []domain.IssueKind {
	kinds := make([]domain.IssueKind, 0, len(issues))
	for _, i := range issues {
		kinds = append(kinds, i.Kind)
	}
	return kinds
}

func TestInspectVisibleElement(t *testing.T) {
	doc := parseDoc(t, visibilityPage)

	report, err := InspectElement(doc, domain.InspectRequest{Selector: "#ok"})
	require.NoError(t, err)

	assert.True(t, report.Visible)
	assert.Empty(t, report.Issues)
	assert.Equal(t, 100.0, report.Rect.Width)
	assert.Equal(t, 50.0, report.Rect.Height)
	assert.Equal(t, "block", report.Style.Display)
}

func TestInspectClassifications(t *testing.T) {
	doc := parseDoc(t, visibilityPage)

	tests := []struct {
		selector string
		kind     domain.IssueKind
	}{
		{"#gone", domain.IssueDisplayNone},
		{"#ghost", domain.IssueVisibilityHidden},
		{"#faded", domain.IssueOpacityZero},
		{"#offscreen", domain.IssueOutOfViewport},
		{"#flat", domain.IssueZeroDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			report, err := InspectElement(doc, domain.InspectRequest{Selector: tt.selector})
			require.NoError(t, err)
			assert.False(t, report.Visible)
			assert.Contains(t, issueKinds(report.Issues), tt.kind)
		})
	}
}

// A hidden element with zero size reports only the hide, not the size: an
// intentionally hidden element is allowed to collapse.
func TestInspectHiddenElementSkipsDimensionCheck(t *testing.T) {
	doc := parseDoc(t, visibilityPage)

	report, err := InspectElement(doc, domain.InspectRequest{Selector: "#gone"})
	require.NoError(t, err)
	assert.NotContains(t, issueKinds(report.Issues), domain.IssueZeroDimensions)
}

// An element whose class has no style rule stays visible: the finding is
// advisory.
func TestInspectMissingClassIsAdvisory(t *testing.T) {
	doc := parseDoc(t, visibilityPage)

	report, err := InspectElement(doc, domain.InspectRequest{Selector: "#unstyled"})
	require.NoError(t, err)

	assert.True(t, report.Visible)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, domain.IssueClassesMissing, report.Issues[0].Kind)
	assert.Contains(t, report.Issues[0].Detail, "mystery")
	assert.NotContains(t, report.Issues[0].Detail, "box")
}

func TestInspectNotFound(t *testing.T) {
	doc := parseDoc(t, visibilityPage)

	_, err := InspectElement(doc, domain.InspectRequest{Selector: "#nope"})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.ErrorFrom(err).Kind)
}

func TestDiagnoseCollectsAllFindings(t *testing.T) {
	doc := parseDoc(t, visibilityPage)

	result, err := Diagnose(doc)
	require.NoError(t, err)

	assert.False(t, result.Healthy)
	kinds := issueKinds(result.Issues)
	assert.Contains(t, kinds, domain.IssueDisplayNone)
	assert.Contains(t, kinds, domain.IssueVisibilityHidden)
	assert.Contains(t, kinds, domain.IssueOpacityZero)
	assert.Contains(t, kinds, domain.IssueOutOfViewport)
	assert.Contains(t, kinds, domain.IssueZeroDimensions)
	assert.Contains(t, kinds, domain.IssueClassesMissing)
	assert.Contains(t, result.Summary, "issue(s)")
}

func TestDiagnoseZIndexStackOrdered(t *testing.T) {
	doc := parseDoc(t, visibilityPage)

	result, err := Diagnose(doc)
	require.NoError(t, err)

	require.Len(t, result.ZIndexStack, 2)
	assert.Equal(t, 100, result.ZIndexStack[0].ZIndex)
	assert.Equal(t, "div#modal.modal", result.ZIndexStack[0].Selector)
	assert.Equal(t, 30, result.ZIndexStack[1].ZIndex)
}

func TestDiagnoseHealthyDocument(t *testing.T) {
	doc := parseDoc(t, `<html><head><style>
body { width: 800px; height: 600px; }
.box { width: 10px; height: 10px; }
</style></head>
<body><div class="box">hi</div></body></html>`)

	result, err := Diagnose(doc)
	require.NoError(t, err)

	assert.True(t, result.Healthy)
	assert.Empty(t, result.Issues)
	assert.Equal(t, "no issues detected", result.Summary)
}

func TestDiagnoseViewportConfigurable(t *testing.T) {
	page := `<html><head><style>
.far { position: absolute; left: 900px; top: 0px; width: 50px; height: 50px; }
</style></head><body><div class="far"></div></body></html>`

	narrow := parseDoc(t, page)
	result, err := Diagnose(narrow)
	require.NoError(t, err)
	assert.Contains(t, issueKinds(result.Issues), domain.IssueOutOfViewport)

	wide, err := htmldoc.ParseString(page, htmldoc.WithViewport(1920, 1080))
	require.NoError(t, err)
	result, err = Diagnose(wide)
	require.NoError(t, err)
	assert.NotContains(t, issueKinds(result.Issues), domain.IssueOutOfViewport)
}

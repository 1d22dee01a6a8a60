package inspect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimpse-dev/glimpse/internal/adapters/htmldoc"
	"github.com/glimpse-dev/glimpse/pkg/domain"
)

func parseDoc(t *testing.T, page string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.ParseString(page)
	require.NoError(t, err)
	return doc
}

func TestTreeProjectsNestedElements(t *testing.T) {
	doc := parseDoc(t, `<body><div id="a"><div id="b"><div id="c">deep</div></div></div></body>`)

	result, err := Tree(doc, domain.TreeRequest{})
	require.NoError(t, err)

	assert.Equal(t, "body", result.Root.Tag)
	require.Len(t, result.Root.Children, 1)
	a := result.Root.Children[0]
	assert.Equal(t, "a", a.ID)
	require.Len(t, a.Children, 1)
	b := a.Children[0]
	require.Len(t, b.Children, 1)
	c := b.Children[0]
	require.Len(t, c.Children, 1)
	assert.Equal(t, "deep", c.Children[0].Text)

	// body, 3 divs, 1 text node
	assert.Equal(t, 5, result.Stats.TotalNodes)
	assert.False(t, result.Stats.Truncated)
}

func TestTreeDepthBudget(t *testing.T) {
	doc := parseDoc(t, `<body><div><div><div>deep</div></div></div></body>`)

	result, err := Tree(doc, domain.TreeRequest{MaxDepth: 2})
	require.NoError(t, err)

	assert.True(t, result.Stats.Truncated)

	// The div at the depth limit carries a placeholder instead of its subtree.
	require.Len(t, result.Root.Children, 1)
	inner := result.Root.Children[0].Children[0]
	require.Len(t, inner.Children, 1)
	assert.Equal(t, domain.TruncatedDepth, inner.Children[0].Truncated)
	assert.Empty(t, inner.Children[0].Children)
}

func TestTreeNodeBudget(t *testing.T) {
	var b strings.Builder
	b.WriteString("<body>")
	for i := 0; i < 20; i++ {
		b.WriteString("<p>x</p>")
	}
	b.WriteString("</body>")
	doc := parseDoc(t, b.String())

	result, err := Tree(doc, domain.TreeRequest{MaxNodes: 5})
	require.NoError(t, err)

	assert.True(t, result.Stats.Truncated)
	assert.LessOrEqual(t, result.Stats.TotalNodes, 5)

	// The last child is a marker reporting how many siblings were skipped.
	last := result.Root.Children[len(result.Root.Children)-1]
	assert.Equal(t, domain.TruncatedMaxNodes, last.Truncated)
	assert.Equal(t, 18, last.SkippedSiblings)
}

func TestTreeMarkersDoNotConsumeBudget(t *testing.T) {
	doc := parseDoc(t, `<body><div><div><div>deep</div></div></div></body>`)

	result, err := Tree(doc, domain.TreeRequest{MaxNodes: 4})
	require.NoError(t, err)

	// Exactly the four real nodes fit; the budget is spent on content, not
	// on truncation markers.
	assert.Equal(t, 4, result.Stats.TotalNodes)
	assert.True(t, result.Stats.Truncated)
}

func TestTreeSkipsNonContentTags(t *testing.T) {
	doc := parseDoc(t, `<html><head><style>.a{}</style><meta charset="utf-8"></head>
<body><script>var x;</script><div id="app">hi</div></body></html>`)

	result, err := Tree(doc, domain.TreeRequest{})
	require.NoError(t, err)

	require.Len(t, result.Root.Children, 1)
	assert.Equal(t, "div", result.Root.Children[0].Tag)
}

func TestTreeTruncatesLongText(t *testing.T) {
	long := strings.Repeat("é", domain.MaxTextLength+30)
	doc := parseDoc(t, "<body><p>"+long+"</p></body>")

	result, err := Tree(doc, domain.TreeRequest{})
	require.NoError(t, err)

	text := result.Root.Children[0].Children[0].Text
	assert.True(t, strings.HasSuffix(text, "…"))
	assert.Equal(t, domain.MaxTextLength+1, len([]rune(text)))
}

func TestTreeSubtreeSelector(t *testing.T) {
	doc := parseDoc(t, `<body><div id="app"><span>inner</span></div><footer>bottom</footer></body>`)

	result, err := Tree(doc, domain.TreeRequest{Selector: "#app"})
	require.NoError(t, err)

	assert.Equal(t, "div", result.Root.Tag)
	assert.Equal(t, "app", result.Root.ID)
}

func TestTreeSelectorNotFound(t *testing.T) {
	doc := parseDoc(t, `<body><div></div></body>`)

	_, err := Tree(doc, domain.TreeRequest{Selector: "#missing"})
	require.Error(t, err)

	e := domain.ErrorFrom(err)
	assert.Equal(t, domain.KindNotFound, e.Kind)
	assert.Equal(t, "Selector not found: #missing", e.Detail)
}

func TestTreeRejectsBudgetOverLimit(t *testing.T) {
	doc := parseDoc(t, `<body></body>`)

	_, err := Tree(doc, domain.TreeRequest{MaxNodes: domain.MaxNodesLimit + 1})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidParams, domain.ErrorFrom(err).Kind)
}

package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimpse-dev/glimpse/pkg/domain"
)

const classesPage = `<html><head>
<style>
/* layout */
.container, .row { margin: 0 auto; }
.card { padding: 12px; border: 1px solid #ddd; }
.w-\[37px\] { width: 37px; }
</style>
<link rel="stylesheet" href="https://cdn.example.com/theme.css">
</head><body></body></html>`

func TestValidateClassesReport(t *testing.T) {
	doc := parseDoc(t, classesPage)

	report, err := ValidateClasses(doc, domain.ClassesRequest{
		Classes: []string{"card", "container", "row", "sidebar"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Found)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, []string{"sidebar"}, report.MissingClasses)

	byName := map[string]domain.ClassStatus{}
	for _, c := range report.Classes {
		byName[c.Name] = c
	}
	assert.True(t, byName["card"].Found)
	assert.Contains(t, byName["card"].Rule, ".card {")
	assert.False(t, byName["sidebar"].Found)
	assert.Empty(t, byName["sidebar"].Rule)
}

func TestValidateClassesGroupedSelectors(t *testing.T) {
	doc := parseDoc(t, classesPage)

	// Both names of a grouped selector resolve to a rule.
	report, err := ValidateClasses(doc, domain.ClassesRequest{Classes: []string{"container", "row"}})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Found)
}

func TestValidateClassesEscapedSelector(t *testing.T) {
	doc := parseDoc(t, classesPage)

	report, err := ValidateClasses(doc, domain.ClassesRequest{Classes: []string{"w-[37px]"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Found)
}

// Classes matching utility-generation patterns are still reported as not
// found, but excluded from the missing list: the build may synthesize them
// at runtime.
func TestValidateClassesDynamicHeuristic(t *testing.T) {
	doc := parseDoc(t, classesPage)

	report, err := ValidateClasses(doc, domain.ClassesRequest{
		Classes: []string{"p-4", "mt-2.5", "hover:bg-white", "bg-[#1e293b]", "sidebar"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Found)
	assert.Equal(t, 5, report.Missing)
	assert.Equal(t, []string{"sidebar"}, report.MissingClasses)
}

func TestValidateClassesSkipsInaccessibleSheets(t *testing.T) {
	doc := parseDoc(t, classesPage)

	// theme.css is a <link> this backend cannot read; its classes simply
	// do not resolve instead of failing the scan.
	report, err := ValidateClasses(doc, domain.ClassesRequest{Classes: []string{"theme-only"}})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Found)
	assert.Equal(t, []string{"theme-only"}, report.MissingClasses)
}

func TestValidateClassesRejectsEmpty(t *testing.T) {
	doc := parseDoc(t, classesPage)

	_, err := ValidateClasses(doc, domain.ClassesRequest{})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidParams, domain.ErrorFrom(err).Kind)

	_, err = ValidateClasses(doc, domain.ClassesRequest{Classes: []string{"ok", " "}})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidParams, domain.ErrorFrom(err).Kind)
}

func TestExtractClassTokens(t *testing.T) {
	tests := []struct {
		selector string
		want     []string
	}{
		{".card", []string{"card"}},
		{"div.card.active > .label", []string{"card", "active", "label"}},
		{`.w-\[37px\]`, []string{"w-[37px]"}},
		{"#id span", nil},
	}
	for _, tt := range tests {
		got := extractClassTokens(tt.selector)
		if tt.want == nil {
			assert.Empty(t, got, tt.selector)
			continue
		}
		assert.Equal(t, tt.want, got, tt.selector)
	}
}

func TestLooksGenerated(t *testing.T) {
	generated := []string{"p-4", "mt-2", "gap-1.5", "w-[37px]", "bg-[#1e293b]", "hover:bg-white", "md:flex"}
	for _, name := range generated {
		assert.True(t, looksGenerated(name), name)
	}
	static := []string{"card", "sidebar", "nav-bar", "btn_primary"}
	for _, name := range static {
		assert.False(t, looksGenerated(name), name)
	}
}

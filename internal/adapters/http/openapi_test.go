package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSpecValidates(t *testing.T) {
	doc, err := loadSpec()
	require.NoError(t, err)
	require.NotNil(t, doc.Info)
	assert.NotEmpty(t, doc.Info.Version)
}

// Every documented path has a registered route; drift between the spec
// and the router is a bug.
func TestSpecCoversRoutes(t *testing.T) {
	doc, err := loadSpec()
	require.NoError(t, err)

	want := []string{
		"/status", "/eval", "/query", "/dom", "/inspect",
		"/validate-classes", "/diagnose", "/screenshot",
	}
	for _, path := range want {
		assert.NotNil(t, doc.Paths.Find(path), "path %s missing from spec", path)
	}
}

func TestAPIVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", apiVersion())
}

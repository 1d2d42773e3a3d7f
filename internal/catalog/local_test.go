package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repofleet/internal/catalog"
	"github.com/temirov/repofleet/internal/discovery"
)

func TestRenderLocalRepositoriesSortsBySlug(testInstance *testing.T) {
	descriptors := []discovery.RepositoryDescriptor{
		{Slug: "acme/zeta", Path: "/workspace/zeta"},
		{Slug: "acme/alpha", Path: "/workspace/alpha"},
	}

	outputBuffer := &bytes.Buffer{}
	catalog.RenderLocalRepositories(outputBuffer, descriptors)

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "acme/alpha")
	require.Contains(testInstance, renderedOutput, "/workspace/zeta")
	require.Less(testInstance, strings.Index(renderedOutput, "acme/alpha"), strings.Index(renderedOutput, "acme/zeta"))
}

func TestRenderLocalRepositoriesEmptyListStillRendersHeader(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	catalog.RenderLocalRepositories(outputBuffer, nil)
	require.Contains(testInstance, strings.ToUpper(outputBuffer.String()), "SLUG")
}

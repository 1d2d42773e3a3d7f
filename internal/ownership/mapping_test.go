package ownership_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repofleet/internal/ownership"
)

func mappingPaths(mapping []ownership.PathAssignment) []string {
	paths := make([]string, 0, len(mapping))
	for _, assignment := range mapping {
		paths = append(paths, assignment.Path)
	}
	return paths
}

func TestBuildPathMappingOrdersRootThenDepthThenLexicographic(testInstance *testing.T) {
	entries := map[string][]string{
		"/a/b/":  {"carol"},
		"/docs/": {"bob"},
		"/":      {"alice"},
	}

	mapping := ownership.BuildPathMapping(entries, nil)
	require.Equal(testInstance, []string{"/", "/docs/", "/a/b/"}, mappingPaths(mapping))
}

func TestBuildPathMappingBreaksDepthTiesLexicographically(testInstance *testing.T) {
	entries := map[string][]string{
		"/zeta/":  {"alice"},
		"/alpha/": {"bob"},
		"/mid/":   {"carol"},
	}

	mapping := ownership.BuildPathMapping(entries, nil)
	require.Equal(testInstance, []string{"/alpha/", "/mid/", "/zeta/"}, mappingPaths(mapping))
}

func TestBuildPathMappingMergesUnownedBuckets(testInstance *testing.T) {
	entries := map[string][]string{
		"/docs/": {"bob", "carol"},
	}
	unownedBuckets := []string{"/", "/src/"}

	mapping := ownership.BuildPathMapping(entries, unownedBuckets)

	require.Equal(testInstance, []string{"/", "/docs/", "/src/"}, mappingPaths(mapping))
	require.True(testInstance, mapping[0].Unowned)
	require.Equal(testInstance, []string{"bob", "carol"}, mapping[1].Owners)
	require.True(testInstance, mapping[2].Unowned)
}

func TestBuildPathMappingTreatsZeroOwnerEntryAsUnowned(testInstance *testing.T) {
	entries := map[string][]string{
		"/src/": {},
	}

	mapping := ownership.BuildPathMapping(entries, nil)
	require.Len(testInstance, mapping, 1)
	require.True(testInstance, mapping[0].Unowned)
}

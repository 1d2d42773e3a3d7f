package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/repofleet/internal/utils/path"
)

func newFixedHomeExpander(homeDirectory string) *pathutils.HomeExpander {
	return pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return homeDirectory, nil
	})
}

func TestSanitizeTrimsAndExpandsHomePaths(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	sanitizer := pathutils.NewRepositoryPathSanitizerWithConfiguration(newFixedHomeExpander(homeDirectory), pathutils.RepositoryPathSanitizerConfiguration{})

	sanitized := sanitizer.Sanitize([]string{
		"",
		"  /srv/repositories\t",
		" ~/workspace ",
		"~",
	})

	require.Equal(testInstance, []string{
		"/srv/repositories",
		filepath.Join(homeDirectory, "workspace"),
		homeDirectory,
	}, sanitized)
}

func TestSanitizePrunesNestedAndDuplicatePaths(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	nestedDirectory := filepath.Join(rootDirectory, "team", "service")
	siblingDirectory := filepath.Join(rootDirectory+"-archive", "mirror")

	sanitizer := pathutils.NewRepositoryPathSanitizerWithConfiguration(nil, pathutils.RepositoryPathSanitizerConfiguration{PruneNestedPaths: true})

	sanitized := sanitizer.Sanitize([]string{
		nestedDirectory,
		rootDirectory,
		rootDirectory,
		siblingDirectory,
	})

	require.Equal(testInstance, []string{rootDirectory, siblingDirectory}, sanitized)
}

func TestSanitizeReturnsNilWhenNothingSurvives(testInstance *testing.T) {
	sanitizer := pathutils.NewRepositoryPathSanitizer()
	require.Nil(testInstance, sanitizer.Sanitize([]string{"   ", "\n", ""}))
}

package ownership_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repofleet/internal/ownership"
)

func writeRepositoryFile(testInstance *testing.T, repositoryRoot string, relativePath string) {
	fullPath := filepath.Join(repositoryRoot, relativePath)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(fullPath), testDirectoryPermissions))
	require.NoError(testInstance, os.WriteFile(fullPath, []byte("content"), testFilePermissions))
}

func TestIsCodeFile(testInstance *testing.T) {
	testCases := []struct {
		fileName string
		expected bool
	}{
		{fileName: "main.py", expected: true},
		{fileName: "app.js", expected: true},
		{fileName: "Widget.TSX", expected: true},
		{fileName: "variables.tf", expected: true},
		{fileName: "deploy.YAML", expected: true},
		{fileName: "Dockerfile", expected: true},
		{fileName: "Makefile", expected: true},
		{fileName: "README.md", expected: false},
		{fileName: "notes.txt", expected: false},
		{fileName: "binary", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.fileName, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, ownership.IsCodeFile(testCase.fileName))
		})
	}
}

func TestGatherCodeFilesExcludesGitAndGithubSubtrees(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()
	writeRepositoryFile(testInstance, repositoryRoot, "src/main.py")
	writeRepositoryFile(testInstance, repositoryRoot, "Dockerfile")
	writeRepositoryFile(testInstance, repositoryRoot, "README.md")
	writeRepositoryFile(testInstance, repositoryRoot, ".git/config.yaml")
	writeRepositoryFile(testInstance, repositoryRoot, ".github/workflows/ci.yml")

	engine := ownership.NewCoverageEngine()
	codeFiles, gatherError := engine.GatherCodeFiles(repositoryRoot)
	require.NoError(testInstance, gatherError)
	require.ElementsMatch(testInstance, []string{"src/main.py", "Dockerfile"}, codeFiles)
}

func TestDetermineUnownedBucketsByFirstLevelDirectory(testInstance *testing.T) {
	table := ownership.ParseCodeowners("/docs/ @bob\n")
	engine := ownership.NewCoverageEngine()

	unownedBuckets := engine.DetermineUnowned(table, []string{
		"docs/setup.yaml",
		"src/main.py",
		"src/util/helper.py",
		"Makefile",
	})

	require.Equal(testInstance, []string{"/", "/src/"}, unownedBuckets)
}

func TestDetermineUnownedIsEmptyExactlyWhenFullyCovered(testInstance *testing.T) {
	engine := ownership.NewCoverageEngine()

	fullyCoveringTable := ownership.ParseCodeowners("* @alice\n")
	require.Empty(testInstance, engine.DetermineUnowned(fullyCoveringTable, []string{"src/main.py", "Makefile"}))

	partialTable := ownership.ParseCodeowners("/src/ @alice\n")
	require.NotEmpty(testInstance, engine.DetermineUnowned(partialTable, []string{"src/main.py", "Makefile"}))
}

package ownership

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const (
	gitDirectoryNameConstant            = ".git"
	githubDirectoryNameConstant         = ".github"
	dockerfileNameConstant              = "Dockerfile"
	makefileNameConstant                = "Makefile"
	codeFileWalkErrorTemplateConstant   = "failed to walk %s: %w"
	pathSeparatorConstant               = "/"
)

var codeFileExtensions = map[string]struct{}{
	".py":   {},
	".js":   {},
	".jsx":  {},
	".ts":   {},
	".tsx":  {},
	".css":  {},
	".html": {},
	".tf":   {},
	".yaml": {},
	".yml":  {},
	".toml": {},
	".tpl":  {},
}

// CoverageEngine enumerates a repository's code files and computes which
// first-level directories no ownership pattern covers.
type CoverageEngine struct{}

// NewCoverageEngine constructs a CoverageEngine.
func NewCoverageEngine() CoverageEngine {
	return CoverageEngine{}
}

// GatherCodeFiles walks repositoryRoot and returns repository-relative paths of
// files the code heuristic accepts, excluding the .git and .github subtrees.
func (engine CoverageEngine) GatherCodeFiles(repositoryRoot string) ([]string, error) {
	var codeFiles []string

	walkError := filepath.WalkDir(repositoryRoot, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}

		if directoryEntry.IsDir() {
			entryName := directoryEntry.Name()
			if currentPath != repositoryRoot && (entryName == gitDirectoryNameConstant || entryName == githubDirectoryNameConstant) {
				return fs.SkipDir
			}
			return nil
		}

		if !IsCodeFile(directoryEntry.Name()) {
			return nil
		}

		relativePath, relativeError := filepath.Rel(repositoryRoot, currentPath)
		if relativeError != nil {
			return relativeError
		}
		codeFiles = append(codeFiles, filepath.ToSlash(relativePath))
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(codeFileWalkErrorTemplateConstant, repositoryRoot, walkError)
	}

	return codeFiles, nil
}

// DetermineUnowned returns the distinct first-level directory buckets containing
// code files no ownership pattern covers.
//
// A file at relative path p is covered when any pattern is a string prefix of
// "/"+p. Uncovered files bucket to the root marker when they sit at the top of
// the tree, otherwise to "/<first-segment>/".
func (engine CoverageEngine) DetermineUnowned(table OwnershipTable, codeFiles []string) []string {
	unownedBuckets := make(map[string]struct{})

	for _, codeFile := range codeFiles {
		absoluteStylePath := pathSeparatorConstant + codeFile

		covered := false
		for pattern := range table.Entries {
			if strings.HasPrefix(absoluteStylePath, pattern) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}

		pathSegments := splitPathSegments(absoluteStylePath)
		if len(pathSegments) <= 1 {
			unownedBuckets[RootPatternMarker] = struct{}{}
			continue
		}
		unownedBuckets[pathSeparatorConstant+pathSegments[0]+pathSeparatorConstant] = struct{}{}
	}

	bucketList := make([]string, 0, len(unownedBuckets))
	for bucket := range unownedBuckets {
		bucketList = append(bucketList, bucket)
	}
	sort.Strings(bucketList)
	return bucketList
}

// IsCodeFile reports whether the heuristic classifies fileName as code.
//
// Dockerfile and Makefile match unconditionally; everything else matches only
// when its extension appears in the fixed allow-list, case-insensitively.
func IsCodeFile(fileName string) bool {
	if fileName == dockerfileNameConstant || fileName == makefileNameConstant {
		return true
	}

	extension := strings.ToLower(filepath.Ext(fileName))
	_, allowed := codeFileExtensions[extension]
	return allowed
}

func splitPathSegments(slashPath string) []string {
	var segments []string
	for _, segment := range strings.Split(slashPath, pathSeparatorConstant) {
		if len(segment) > 0 {
			segments = append(segments, segment)
		}
	}
	return segments
}

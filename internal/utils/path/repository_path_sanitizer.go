package pathutils

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// RepositoryPathSanitizerConfiguration controls optional sanitization behavior.
type RepositoryPathSanitizerConfiguration struct {
	// PruneNestedPaths drops paths that resolve inside another provided path.
	PruneNestedPaths bool
}

// RepositoryPathSanitizer trims, home-expands, and optionally de-nests
// repository path arguments so every command treats them uniformly.
type RepositoryPathSanitizer struct {
	homeExpander  *HomeExpander
	configuration RepositoryPathSanitizerConfiguration
}

// NewRepositoryPathSanitizer constructs a sanitizer with default behavior.
func NewRepositoryPathSanitizer() *RepositoryPathSanitizer {
	return NewRepositoryPathSanitizerWithConfiguration(nil, RepositoryPathSanitizerConfiguration{})
}

// NewRepositoryPathSanitizerWithConfiguration constructs a sanitizer with the
// provided home expander and configuration. A nil expander uses the OS lookup.
func NewRepositoryPathSanitizerWithConfiguration(homeExpander *HomeExpander, configuration RepositoryPathSanitizerConfiguration) *RepositoryPathSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RepositoryPathSanitizer{homeExpander: homeExpander, configuration: configuration}
}

// Sanitize trims whitespace, expands home-directory shortcuts, and drops blank
// entries. With PruneNestedPaths enabled it also removes duplicates and paths
// nested beneath another entry, preserving the original argument order. A nil
// slice is returned when nothing survives.
func (sanitizer *RepositoryPathSanitizer) Sanitize(candidatePaths []string) []string {
	if sanitizer == nil {
		return NewRepositoryPathSanitizer().Sanitize(candidatePaths)
	}

	sanitizedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedPath := strings.TrimSpace(candidatePath)
		if len(trimmedPath) == 0 {
			continue
		}
		expandedPath := sanitizer.homeExpander.Expand(trimmedPath)
		if len(expandedPath) == 0 {
			continue
		}
		sanitizedPaths = append(sanitizedPaths, expandedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	if sanitizer.configuration.PruneNestedPaths {
		return pruneNestedPaths(sanitizedPaths)
	}
	return sanitizedPaths
}

type rankedPath struct {
	argumentIndex int
	original      string
	comparable    string
}

// pruneNestedPaths keeps only the outermost of any set of overlapping paths.
// Shorter canonical paths are considered first so containers win over contents.
func pruneNestedPaths(candidatePaths []string) []string {
	ranked := make([]rankedPath, 0, len(candidatePaths))
	for argumentIndex, candidatePath := range candidatePaths {
		ranked = append(ranked, rankedPath{
			argumentIndex: argumentIndex,
			original:      candidatePath,
			comparable:    comparablePath(candidatePath),
		})
	}

	sort.SliceStable(ranked, func(first int, second int) bool {
		if len(ranked[first].comparable) == len(ranked[second].comparable) {
			return ranked[first].comparable < ranked[second].comparable
		}
		return len(ranked[first].comparable) < len(ranked[second].comparable)
	})

	kept := make([]rankedPath, 0, len(ranked))
	for _, candidate := range ranked {
		if containsPath(kept, candidate.comparable) {
			continue
		}
		kept = append(kept, candidate)
	}

	sort.SliceStable(kept, func(first int, second int) bool {
		return kept[first].argumentIndex < kept[second].argumentIndex
	})

	prunedPaths := make([]string, 0, len(kept))
	for _, survivor := range kept {
		prunedPaths = append(prunedPaths, survivor.original)
	}
	return prunedPaths
}

func containsPath(kept []rankedPath, candidate string) bool {
	for _, existing := range kept {
		if candidate == existing.comparable {
			return true
		}
		parentPrefix := existing.comparable
		if !strings.HasSuffix(parentPrefix, string(filepath.Separator)) {
			parentPrefix += string(filepath.Separator)
		}
		if strings.HasPrefix(candidate, parentPrefix) {
			return true
		}
	}
	return false
}

// comparablePath canonicalizes a path for containment checks. Windows paths
// compare case-insensitively.
func comparablePath(candidatePath string) string {
	cleanedPath := filepath.Clean(candidatePath)
	if absolutePath, absoluteError := filepath.Abs(cleanedPath); absoluteError == nil {
		cleanedPath = absolutePath
	}
	if runtime.GOOS == "windows" {
		cleanedPath = strings.ToLower(cleanedPath)
	}
	return cleanedPath
}

package ownership

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	codeownersDirectoryNameConstant       = ".github"
	codeownersFileNameConstant            = "CODEOWNERS"
	commentLinePrefixConstant             = "#"
	wildcardPatternConstant               = "*"
	ownerPrefixConstant                   = "@"
	codeownersReadErrorTemplateConstant   = "failed to read %s: %w"
	fileSystemNotConfiguredMessageConstant = "file system not configured"
)

// ErrParserFileSystemNotConfigured indicates the parser was constructed without a file system.
var ErrParserFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)

// OwnershipParser loads and classifies a repository's CODEOWNERS file.
type OwnershipParser struct {
	fileSystem FileSystem
}

// NewOwnershipParser constructs an OwnershipParser backed by the provided file system.
func NewOwnershipParser(fileSystem FileSystem) (*OwnershipParser, error) {
	if fileSystem == nil {
		return nil, ErrParserFileSystemNotConfigured
	}
	return &OwnershipParser{fileSystem: fileSystem}, nil
}

// Load reads the CODEOWNERS file beneath repositoryRoot and classifies it.
//
// A missing file is not an error: it yields the TableMissing classification.
// Only a present-but-unreadable file surfaces an error to the caller.
func (parser *OwnershipParser) Load(repositoryRoot string) (OwnershipTable, error) {
	codeownersPath := filepath.Join(repositoryRoot, codeownersDirectoryNameConstant, codeownersFileNameConstant)

	if _, statError := parser.fileSystem.Stat(codeownersPath); statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return OwnershipTable{Classification: TableMissing}, nil
		}
		return OwnershipTable{}, fmt.Errorf(codeownersReadErrorTemplateConstant, codeownersPath, statError)
	}

	codeownersContent, readError := parser.fileSystem.ReadFile(codeownersPath)
	if readError != nil {
		return OwnershipTable{}, fmt.Errorf(codeownersReadErrorTemplateConstant, codeownersPath, readError)
	}

	return ParseCodeowners(string(codeownersContent)), nil
}

// ParseCodeowners classifies CODEOWNERS content as empty or present with entries.
//
// Blank lines and comment lines are skipped. Each remaining line contributes one
// pattern (the literal wildcard normalizes to the root marker) with its owners
// stripped of any leading @. A repeated pattern overwrites earlier owners, so
// later lines win. Lines without at least one owner are ignored.
func ParseCodeowners(content string) OwnershipTable {
	entries := make(map[string][]string)

	for _, rawLine := range strings.Split(content, "\n") {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 || strings.HasPrefix(trimmedLine, commentLinePrefixConstant) {
			continue
		}

		lineFields := strings.Fields(trimmedLine)
		if len(lineFields) < 2 {
			continue
		}

		pattern := lineFields[0]
		if pattern == wildcardPatternConstant {
			pattern = RootPatternMarker
		}

		owners := make([]string, 0, len(lineFields)-1)
		for _, ownerField := range lineFields[1:] {
			owners = append(owners, strings.TrimPrefix(ownerField, ownerPrefixConstant))
		}
		entries[pattern] = owners
	}

	if len(entries) == 0 {
		return OwnershipTable{Classification: TableEmpty}
	}
	return OwnershipTable{Classification: TablePresent, Entries: entries}
}

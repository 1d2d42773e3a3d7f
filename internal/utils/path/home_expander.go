// Package pathutils normalizes user-supplied repository paths.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites leading "~" path segments to the user's home directory.
// The home directory lookup runs once and is cached for the expander's lifetime.
type HomeExpander struct {
	provideHomeDirectory HomeDirectoryProvider
	lookupOnce           sync.Once
	homeDirectory        string
	lookupError          error
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander using the supplied
// lookup, falling back to os.UserHomeDir when provider is nil.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provideHomeDirectory: provider}
}

// Expand resolves a leading tilde to the user's home directory. Paths without a
// tilde prefix, and any path when the home lookup fails, are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || len(candidatePath) == 0 || candidatePath[0] != '~' {
		return candidatePath
	}

	expander.lookupOnce.Do(func() {
		expander.homeDirectory, expander.lookupError = expander.provideHomeDirectory()
	})
	if expander.lookupError != nil || len(expander.homeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == "~" {
		return expander.homeDirectory
	}

	for _, tildePrefix := range tildePrefixes() {
		if strings.HasPrefix(candidatePath, tildePrefix) {
			return filepath.Join(expander.homeDirectory, strings.TrimPrefix(candidatePath, tildePrefix))
		}
	}

	// Paths like "~user/..." are left for the shell to interpret.
	return candidatePath
}

func tildePrefixes() []string {
	prefixes := []string{"~/"}
	nativePrefix := "~" + string(os.PathSeparator)
	if nativePrefix != prefixes[0] {
		prefixes = append(prefixes, nativePrefix)
	}
	return prefixes
}

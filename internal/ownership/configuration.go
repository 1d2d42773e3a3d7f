package ownership

const (
	concurrencyConfigurationKeyConstant     = ".concurrency"
	authorLimitConfigurationKeyConstant     = ".author_limit"
	excludedAuthorsConfigurationKeyConstant = ".excluded_authors"
	defaultConcurrencyValueConstant         = 8
)

// CommandConfiguration captures configurable defaults for the owners command.
type CommandConfiguration struct {
	Concurrency     int      `mapstructure:"concurrency"`
	AuthorLimit     int      `mapstructure:"author_limit"`
	ExcludedAuthors []string `mapstructure:"excluded_authors"`
}

// DefaultConfigurationValues exposes configuration defaults keyed under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + concurrencyConfigurationKeyConstant:     defaultConcurrencyValueConstant,
		prefix + authorLimitConfigurationKeyConstant:     defaultAuthorLimitConstant,
		prefix + excludedAuthorsConfigurationKeyConstant: []string{},
	}
}

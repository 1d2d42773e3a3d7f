package stale

const (
	concurrencyConfigurationKeyConstant      = ".concurrency"
	referenceConfigurationKeyConstant        = ".reference"
	pullRequestLimitConfigurationKeyConstant = ".pull_request_limit"
	defaultConcurrencyValueConstant          = 8
)

// CommandConfiguration captures configurable defaults for the stale commands.
type CommandConfiguration struct {
	Concurrency      int    `mapstructure:"concurrency"`
	Reference        string `mapstructure:"reference"`
	PullRequestLimit int    `mapstructure:"pull_request_limit"`
}

// DefaultConfigurationValues exposes configuration defaults keyed under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + concurrencyConfigurationKeyConstant:      defaultConcurrencyValueConstant,
		prefix + referenceConfigurationKeyConstant:        defaultReferencePrefixConstant,
		prefix + pullRequestLimitConfigurationKeyConstant: defaultPullRequestResultLimitConstant,
	}
}

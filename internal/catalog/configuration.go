package catalog

const (
	tokenConfigurationKeyConstant    = ".token"
	pageSizeConfigurationKeyConstant = ".page_size"
)

// CommandConfiguration captures configurable defaults for the repos commands.
type CommandConfiguration struct {
	Token    string `mapstructure:"token"`
	PageSize int    `mapstructure:"page_size"`
}

// DefaultConfigurationValues exposes configuration defaults keyed under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + tokenConfigurationKeyConstant:    "",
		prefix + pageSizeConfigurationKeyConstant: defaultPageSizeConstant,
	}
}

package clone

const (
	clonePathConfigurationKeyConstant  = ".clonepath"
	mirrorPathConfigurationKeyConstant = ".mirrorpath"
	remoteConfigurationKeyConstant     = ".remote"
)

// CommandConfiguration captures configurable defaults for the clone command.
type CommandConfiguration struct {
	ClonePath  string `mapstructure:"clonepath"`
	MirrorPath string `mapstructure:"mirrorpath"`
	RemoteBase string `mapstructure:"remote"`
}

// DefaultConfigurationValues exposes configuration defaults keyed under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + clonePathConfigurationKeyConstant:  defaultClonePathConstant,
		prefix + mirrorPathConfigurationKeyConstant: "",
		prefix + remoteConfigurationKeyConstant:     defaultSSHRemoteBaseConstant,
	}
}

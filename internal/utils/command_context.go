package utils

import "context"

type commandContextKey string

const activeConfigurationFileContextKey = commandContextKey("activeConfigurationFile")

// CommandContextAccessor reads and writes CLI metadata carried on command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the resolved configuration file path on the context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, activeConfigurationFileContextKey, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path previously recorded on the context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	recordedPath, pathRecorded := executionContext.Value(activeConfigurationFileContextKey).(string)
	return recordedPath, pathRecorded && len(recordedPath) > 0
}

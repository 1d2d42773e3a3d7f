package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const environmentKeyPathSeparatorConstant = "."
const environmentKeyWordSeparatorConstant = "_"
const listValueSeparatorConstant = ","

// ConfigurationLoader resolves CLI configuration from four layered sources, lowest
// precedence first: embedded defaults, programmatic default values, a configuration
// file, and prefixed environment variables.
type ConfigurationLoader struct {
	configurationName     string
	configurationType     string
	environmentPrefix     string
	searchPaths           []string
	embeddedConfiguration []byte
	embeddedFormat        string
}

// LoadedConfiguration reports where the effective configuration came from.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader constructs a loader that looks for configurationName files of
// configurationType under the provided search paths and honors environmentPrefix variables.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		searchPaths:       append([]string(nil), searchPaths...),
	}
}

// SetEmbeddedConfiguration registers baked-in configuration content applied beneath
// every other source. Passing empty data clears any previously registered content.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationFormat string) {
	if loader == nil {
		return
	}
	loader.embeddedFormat = strings.TrimSpace(configurationFormat)
	if len(configurationData) == 0 {
		loader.embeddedConfiguration = nil
		return
	}
	loader.embeddedConfiguration = append([]byte(nil), configurationData...)
}

// LoadConfiguration merges every configured source and unmarshals the result into
// targetConfiguration. A missing configuration file is not an error; an unreadable
// or malformed one is.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if mergeError := loader.mergeEmbeddedConfiguration(viperInstance); mergeError != nil {
		return LoadedConfiguration{}, mergeError
	}

	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(environmentKeyPathSeparatorConstant, environmentKeyWordSeparatorConstant))
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	if readError := viperInstance.MergeInConfig(); readError != nil {
		if _, fileNotFound := readError.(viper.ConfigFileNotFoundError); !fileNotFound {
			return LoadedConfiguration{}, fmt.Errorf("failed to read configuration: %w", readError)
		}
	}

	// Environment variables deliver list values as one comma-separated string.
	listDecodeHook := viper.DecodeHook(mapstructure.StringToSliceHookFunc(listValueSeparatorConstant))
	if unmarshalError := viperInstance.Unmarshal(targetConfiguration, listDecodeHook); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf("failed to parse configuration: %w", unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

func (loader *ConfigurationLoader) mergeEmbeddedConfiguration(viperInstance *viper.Viper) error {
	if len(loader.embeddedConfiguration) == 0 {
		return nil
	}

	if len(loader.embeddedFormat) > 0 {
		viperInstance.SetConfigType(loader.embeddedFormat)
	}
	mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration))
	viperInstance.SetConfigType(loader.configurationType)
	if mergeError != nil {
		return fmt.Errorf("failed to merge embedded configuration: %w", mergeError)
	}
	return nil
}

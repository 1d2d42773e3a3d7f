package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repofleet/internal/utils"
)

const (
	loaderTestEnvironmentPrefixConstant = "TESTREPOFLEET"
	loaderTestConfigurationName         = "config"
	loaderTestConfigurationType         = "yaml"
	loaderTestLogLevelKeyConstant       = "common.log_level"
	loaderTestFileContentTemplate       = "common:\n  log_level: %s\n"
)

type loaderTestConfiguration struct {
	Common struct {
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"common"`
	Reviewers []string `mapstructure:"reviewers"`
}

func writeConfigurationFile(testInstance *testing.T, directoryPath string, logLevelValue string) string {
	configurationFilePath := filepath.Join(directoryPath, loaderTestConfigurationName+"."+loaderTestConfigurationType)
	configurationContent := fmt.Sprintf(loaderTestFileContentTemplate, logLevelValue)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
	return configurationFilePath
}

func TestLoadConfigurationLayersSources(testInstance *testing.T) {
	testCases := []struct {
		name                string
		embeddedLogLevel    string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
	}{
		{
			name:             "programmatic_default_wins_without_other_sources",
			expectedLogLevel: "info",
		},
		{
			name:             "embedded_configuration_overrides_default",
			embeddedLogLevel: "debug",
			expectedLogLevel: "debug",
		},
		{
			name:             "configuration_file_overrides_embedded",
			embeddedLogLevel: "debug",
			fileLogLevel:     "warn",
			expectedLogLevel: "warn",
		},
		{
			name:                "environment_overrides_configuration_file",
			embeddedLogLevel:    "debug",
			fileLogLevel:        "warn",
			environmentLogLevel: "error",
			expectedLogLevel:    "error",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configurationDirectory := testInstance.TempDir()

			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = writeConfigurationFile(testInstance, configurationDirectory, testCase.fileLogLevel)
			}

			if len(testCase.environmentLogLevel) > 0 {
				environmentVariableName := loaderTestEnvironmentPrefixConstant + "_" + strings.ToUpper(strings.ReplaceAll(loaderTestLogLevelKeyConstant, ".", "_"))
				testInstance.Setenv(environmentVariableName, testCase.environmentLogLevel)
			}

			configurationLoader := utils.NewConfigurationLoader(
				loaderTestConfigurationName,
				loaderTestConfigurationType,
				loaderTestEnvironmentPrefixConstant,
				[]string{configurationDirectory},
			)
			if len(testCase.embeddedLogLevel) > 0 {
				embeddedContent := fmt.Sprintf(loaderTestFileContentTemplate, testCase.embeddedLogLevel)
				configurationLoader.SetEmbeddedConfiguration([]byte(embeddedContent), loaderTestConfigurationType)
			}

			loadedConfiguration := loaderTestConfiguration{}
			metadata, loadError := configurationLoader.LoadConfiguration(
				configurationFilePath,
				map[string]any{loaderTestLogLevelKeyConstant: "info"},
				&loadedConfiguration,
			)

			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}

func TestLoadConfigurationSearchesConfiguredPaths(testInstance *testing.T) {
	firstSearchDirectory := testInstance.TempDir()
	secondSearchDirectory := testInstance.TempDir()
	configurationFilePath := writeConfigurationFile(testInstance, secondSearchDirectory, "debug")

	configurationLoader := utils.NewConfigurationLoader(
		loaderTestConfigurationName,
		loaderTestConfigurationType,
		loaderTestEnvironmentPrefixConstant,
		[]string{firstSearchDirectory, secondSearchDirectory},
	)

	loadedConfiguration := loaderTestConfiguration{}
	metadata, loadError := configurationLoader.LoadConfiguration("", nil, &loadedConfiguration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "debug", loadedConfiguration.Common.LogLevel)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
}

func TestLoadConfigurationToleratesMissingFile(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(
		loaderTestConfigurationName,
		loaderTestConfigurationType,
		loaderTestEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	loadedConfiguration := loaderTestConfiguration{}
	metadata, loadError := configurationLoader.LoadConfiguration(
		"",
		map[string]any{loaderTestLogLevelKeyConstant: "info"},
		&loadedConfiguration,
	)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "info", loadedConfiguration.Common.LogLevel)
	require.Empty(testInstance, metadata.ConfigFileUsed)
}

func TestLoadConfigurationSplitsListValuesFromEnvironment(testInstance *testing.T) {
	testInstance.Setenv(loaderTestEnvironmentPrefixConstant+"_REVIEWERS", "alice,bob")

	configurationLoader := utils.NewConfigurationLoader(
		loaderTestConfigurationName,
		loaderTestConfigurationType,
		loaderTestEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	loadedConfiguration := loaderTestConfiguration{}
	_, loadError := configurationLoader.LoadConfiguration(
		"",
		map[string]any{"reviewers": []string{}},
		&loadedConfiguration,
	)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"alice", "bob"}, loadedConfiguration.Reviewers)
}

func TestLoadConfigurationRejectsMalformedFile(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(configurationDirectory, loaderTestConfigurationName+"."+loaderTestConfigurationType)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("common: [unbalanced"), 0o600))

	configurationLoader := utils.NewConfigurationLoader(
		loaderTestConfigurationName,
		loaderTestConfigurationType,
		loaderTestEnvironmentPrefixConstant,
		[]string{configurationDirectory},
	)

	loadedConfiguration := loaderTestConfiguration{}
	_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, nil, &loadedConfiguration)

	require.ErrorContains(testInstance, loadError, "failed to read configuration")
}

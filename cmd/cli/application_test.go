package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/isvdebug/cmd/cli/isvdebugger"
	"github.com/temirov/isvdebug/internal/utils"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n  log_level: debug\nbootstrap:\n  output_dir: /srv/isv\n  dry_run: true\n"
)

func TestEmbeddedDefaultConfigurationDecodes(testInstance *testing.T) {
	content, configurationType := EmbeddedDefaultConfiguration()
	require.Equal(testInstance, configurationTypeConstant, configurationType)

	var document map[string]any
	require.NoError(testInstance, yaml.Unmarshal(content, &document))

	var configuration ApplicationConfiguration
	require.NoError(testInstance, mapstructure.Decode(document, &configuration))

	require.Equal(testInstance, string(utils.LogLevelInfo), configuration.Common.LogLevel)
	require.Equal(testInstance, string(utils.LogFormatConsole), configuration.Common.LogFormat)
	require.Equal(testInstance, isvdebugger.DefaultCommandConfiguration(), configuration.Bootstrap)
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	first, _ := EmbeddedDefaultConfiguration()
	first[0] = '#'

	second, _ := EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, first[0], second[0])
}

func TestApplicationRegistersCommands(testInstance *testing.T) {
	application := NewApplication()

	registeredNames := make([]string, 0)
	for _, command := range application.rootCommand.Commands() {
		registeredNames = append(registeredNames, command.Name())
	}
	require.Contains(testInstance, registeredNames, "bootstrap")
	require.Contains(testInstance, registeredNames, "plan")

	for _, flagName := range []string{configFileFlagNameConstant, logLevelFlagNameConstant, logFormatFlagNameConstant, versionFlagNameConstant} {
		require.NotNil(testInstance, application.rootCommand.PersistentFlags().Lookup(flagName), flagName)
	}
}

func TestApplicationLayersConfigurationFileAndFlags(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testConfigurationContentConstant), 0o600))

	testCases := []struct {
		name              string
		arguments         []string
		expectedLogLevel  string
		expectedLogFormat string
	}{
		{
			name:              "configuration_file",
			arguments:         []string{"--config", configurationPath},
			expectedLogLevel:  "debug",
			expectedLogFormat: string(utils.LogFormatConsole),
		},
		{
			name:              "flags_override_file",
			arguments:         []string{"--config", configurationPath, "--log-level", "error", "--log-format", "structured"},
			expectedLogLevel:  "error",
			expectedLogFormat: string(utils.LogFormatStructured),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			application := NewApplication()
			application.rootCommand.SetOut(&bytes.Buffer{})
			application.rootCommand.SetErr(&bytes.Buffer{})
			application.rootCommand.SetArgs(testCase.arguments)

			require.NoError(testInstance, application.Execute())
			require.Equal(testInstance, testCase.expectedLogLevel, application.configuration.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedLogFormat, application.configuration.Common.LogFormat)
			require.Equal(testInstance, "/srv/isv", application.configuration.Bootstrap.OutputDirectory)
			require.True(testInstance, application.configuration.Bootstrap.DryRun)
			require.Equal(testInstance, "42.0", application.configuration.Bootstrap.APIVersion)
			require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)
		})
	}
}

func TestApplicationRejectsUnknownLogLevel(testInstance *testing.T) {
	application := NewApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs([]string{"--log-level", "verbose"})

	require.Error(testInstance, application.Execute())
}

func TestApplicationVersionFlagExits(testInstance *testing.T) {
	application := NewApplication()
	exitCodes := make([]int, 0, 1)
	application.exitFunction = func(code int) {
		exitCodes = append(exitCodes, code)
	}
	application.versionResolver = func(context.Context) string {
		return "v1.2.3"
	}
	output := &bytes.Buffer{}
	application.rootCommand.SetOut(output)
	application.rootCommand.SetArgs([]string{"--version"})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, []int{0}, exitCodes)
	require.Contains(testInstance, output.String(), "isvdebug version: v1.2.3\n")
}

func TestSyncLoggerInstanceIgnoresNilLogger(testInstance *testing.T) {
	require.NoError(testInstance, syncLoggerInstance(nil))
}

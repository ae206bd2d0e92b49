package docs_test

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/isvdebug/cmd/cli"
	"github.com/temirov/isvdebug/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "config.yaml"
	readmeConfigurationNameConstant  = "config"
	readmeConfigurationTypeConstant  = "yaml"
	parentDirectoryReferenceConstant = ".."
	testEnvironmentPrefixConstant    = "TESTISVDEBUGDOCS"
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

func TestReadmeConfigurationParses(testInstance *testing.T) {
	snippetContent := readReadmeConfigurationSnippet(testInstance)

	configurationPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(snippetContent), 0o600))

	loader := utils.NewConfigurationLoader(utils.ConfigurationLoaderOptions{
		ConfigurationName: readmeConfigurationNameConstant,
		ConfigurationType: readmeConfigurationTypeConstant,
		EnvironmentPrefix: testEnvironmentPrefixConstant,
	})

	var applicationConfiguration cli.ApplicationConfiguration
	loaded, loadError := loader.LoadConfiguration(configurationPath, nil, &applicationConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationPath, loaded.ConfigFileUsed)

	require.Equal(testInstance, "info", applicationConfiguration.Common.LogLevel)
	require.Equal(testInstance, "console", applicationConfiguration.Common.LogFormat)
	require.Equal(testInstance, "~/work/isv", applicationConfiguration.Bootstrap.OutputDirectory)
	require.Equal(testInstance, "42.0", applicationConfiguration.Bootstrap.APIVersion)
	require.Equal(testInstance, "en", applicationConfiguration.Bootstrap.Language)
	require.False(testInstance, applicationConfiguration.Bootstrap.DryRun)
}

func TestReadmeConfigurationMatchesEmbeddedKeys(testInstance *testing.T) {
	snippetContent := readReadmeConfigurationSnippet(testInstance)
	embeddedContent, _ := cli.EmbeddedDefaultConfiguration()

	require.Equal(testInstance, configurationKeys(testInstance, embeddedContent), configurationKeys(testInstance, []byte(snippetContent)))
}

func readReadmeConfigurationSnippet(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	contentBytes, readError := os.ReadFile(filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant))
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	fenceEndRelativeIndex := strings.Index(contentText[headerIndex:], yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : headerIndex+fenceEndRelativeIndex])
}

func configurationKeys(testInstance *testing.T, content []byte) []string {
	testInstance.Helper()

	var document map[string]map[string]any
	require.NoError(testInstance, yaml.Unmarshal(content, &document))

	keys := make([]string, 0)
	for sectionName, section := range document {
		for keyName := range section {
			keys = append(keys, sectionName+"."+keyName)
		}
	}
	sort.Strings(keys)
	return keys
}

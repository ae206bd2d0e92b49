package isvdebugger

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/temirov/isvdebug/internal/bootstrap"
	"github.com/temirov/isvdebug/internal/localization"
)

const (
	configurationOutputDirectoryKeyConstant = "output_dir"
	configurationSalesforceCLIKeyConstant   = "sfdx_path"
	configurationDryRunKeyConstant          = "dry_run"
	configurationAPIVersionKeyConstant      = "api_version"
	configurationLanguageKeyConstant        = "language"
	configurationKeySeparatorConstant       = "."
	defaultOutputDirectoryConstant          = "."
	defaultLanguageConstant                 = "en"
)

// CommandConfiguration holds persisted settings for the bootstrap and plan commands.
type CommandConfiguration struct {
	OutputDirectory   string `mapstructure:"output_dir"`
	SalesforceCLIPath string `mapstructure:"sfdx_path"`
	DryRun            bool   `mapstructure:"dry_run"`
	APIVersion        string `mapstructure:"api_version"`
	Language          string `mapstructure:"language"`
}

// DefaultCommandConfiguration returns the baseline configuration.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		OutputDirectory:   defaultOutputDirectoryConstant,
		SalesforceCLIPath: "",
		DryRun:            false,
		APIVersion:        bootstrap.DefaultMetadataAPIVersion,
		Language:          defaultLanguageConstant,
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys below prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		qualifyKey(prefix, configurationOutputDirectoryKeyConstant): defaults.OutputDirectory,
		qualifyKey(prefix, configurationSalesforceCLIKeyConstant):   defaults.SalesforceCLIPath,
		qualifyKey(prefix, configurationDryRunKeyConstant):          defaults.DryRun,
		qualifyKey(prefix, configurationAPIVersionKeyConstant):      defaults.APIVersion,
		qualifyKey(prefix, configurationLanguageKeyConstant):        defaults.Language,
	}
}

// Localizer resolves the configured language, falling back to English for unknown tags.
func (configuration CommandConfiguration) Localizer() localization.Localizer {
	languageTag, parseError := language.Parse(strings.TrimSpace(configuration.Language))
	if parseError != nil {
		return localization.NewEnglishLocalizer()
	}
	return localization.NewCatalogLocalizer(languageTag)
}

func qualifyKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}

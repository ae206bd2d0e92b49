package localization

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestBuildCatalogRegistersEveryEnglishMessage(testInstance *testing.T) {
	messageCatalog, buildError := buildCatalog(englishMessages)
	require.NoError(testInstance, buildError)
	require.Contains(testInstance, messageCatalog.Languages(), language.English)

	keys := []string{
		KeyStepCreateProject, KeyStepConfigureProject, KeyStepRetrieveOrgSource, KeyStepConvertOrgSource,
		KeyStepListInstalledPackages, KeyStepRetrievePackagesSource, KeyStepConvertPackageSource,
		KeyForceIDEURIPrompt, KeyForceIDEURIPlaceholder, KeyForceIDEURIMissingSessionID, KeyForceIDEURIMissingLoginURL,
		KeyProjectNamePrompt, KeyProjectAlreadyExists, KeyBootstrapCompleted, KeyBootstrapCancelled,
		KeyBootstrapNoInstalledPackages,
	}
	require.Len(testInstance, englishMessages, len(keys))
	for _, key := range keys {
		require.Contains(testInstance, englishMessages, key)
	}
}

func TestMustBuildCatalogReturnsUsableCatalog(testInstance *testing.T) {
	messageCatalog := mustBuildCatalog(map[string]string{"greeting": "Hello %s"})
	localizer := &CatalogLocalizer{printer: message.NewPrinter(language.English, message.Catalog(messageCatalog))}
	require.Equal(testInstance, "Hello operator", localizer.Localize("greeting", "operator"))
}

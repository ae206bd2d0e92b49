package localization

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const catalogEntryErrorTemplateConstant = "unable to register message %s: %w"

// Message keys shared by the bootstrap flow.
const (
	KeyStepCreateProject            = "isv_debug_bootstrap_step1_create_project"
	KeyStepConfigureProject         = "isv_debug_bootstrap_step2_configure_project"
	KeyStepRetrieveOrgSource        = "isv_debug_bootstrap_step3_retrieve_org_source"
	KeyStepConvertOrgSource         = "isv_debug_bootstrap_step4_convert_org_source"
	KeyStepListInstalledPackages    = "isv_debug_bootstrap_step5_list_installed_packages"
	KeyStepRetrievePackagesSource   = "isv_debug_bootstrap_step6_retrieve_packages_source"
	KeyStepConvertPackageSource     = "isv_debug_bootstrap_step7_convert_package_source"
	KeyForceIDEURIPrompt            = "forceide_uri_prompt"
	KeyForceIDEURIPlaceholder       = "forceide_uri_placeholder"
	KeyForceIDEURIMissingSessionID  = "forceide_uri_missing_session_id"
	KeyForceIDEURIMissingLoginURL   = "forceide_uri_missing_login_url"
	KeyProjectNamePrompt            = "project_name_prompt"
	KeyProjectAlreadyExists         = "project_already_exists"
	KeyBootstrapCompleted           = "bootstrap_completed"
	KeyBootstrapCancelled           = "bootstrap_cancelled"
	KeyBootstrapNoInstalledPackages = "bootstrap_no_installed_packages"
)

var englishMessages = map[string]string{
	KeyStepCreateProject:            "Creating project",
	KeyStepConfigureProject:         "Configuring project",
	KeyStepRetrieveOrgSource:        "Retrieving org source",
	KeyStepConvertOrgSource:         "Converting org source",
	KeyStepListInstalledPackages:    "Querying for installed packages",
	KeyStepRetrievePackagesSource:   "Retrieving packages",
	KeyStepConvertPackageSource:     "Processing package: %s",
	KeyForceIDEURIPrompt:            "Enter the forceide:// URI for the ISV org",
	KeyForceIDEURIPlaceholder:       "forceide://abc?url=https://instance.my.salesforce.com&sessionId=...",
	KeyForceIDEURIMissingSessionID:  "The forceide:// URI is missing the sessionId parameter",
	KeyForceIDEURIMissingLoginURL:   "The forceide:// URI is missing the url parameter",
	KeyProjectNamePrompt:            "Enter a project name",
	KeyProjectAlreadyExists:         "Project %s already exists in %s",
	KeyBootstrapCompleted:           "ISV debugger project %s is ready in %s",
	KeyBootstrapCancelled:           "ISV debugger bootstrap cancelled",
	KeyBootstrapNoInstalledPackages: "No installed packages found; skipping package retrieval",
}

// Localizer renders the message registered for key with the supplied arguments.
type Localizer interface {
	Localize(key string, arguments ...any) string
}

// CatalogLocalizer resolves keys through a golang.org/x/text message catalog.
type CatalogLocalizer struct {
	printer *message.Printer
}

// NewCatalogLocalizer builds a localizer for the provided language using the built-in catalog.
// Unsupported languages fall back to English.
func NewCatalogLocalizer(tag language.Tag) *CatalogLocalizer {
	matchedTag, _, _ := builtinCatalog.Matcher().Match(tag)
	return &CatalogLocalizer{printer: message.NewPrinter(matchedTag, message.Catalog(builtinCatalog))}
}

// NewEnglishLocalizer builds a localizer for English text.
func NewEnglishLocalizer() *CatalogLocalizer {
	return NewCatalogLocalizer(language.English)
}

// Localize renders the message for key. Unknown keys render as the key itself.
func (localizer *CatalogLocalizer) Localize(key string, arguments ...any) string {
	return localizer.printer.Sprintf(key, arguments...)
}

var builtinCatalog = mustBuildCatalog(englishMessages)

func mustBuildCatalog(messages map[string]string) *catalog.Builder {
	messageCatalog, buildError := buildCatalog(messages)
	if buildError != nil {
		panic(buildError)
	}
	return messageCatalog
}

func buildCatalog(messages map[string]string) (*catalog.Builder, error) {
	messageCatalog := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range messages {
		if setError := messageCatalog.SetString(language.English, key, text); setError != nil {
			return nil, fmt.Errorf(catalogEntryErrorTemplateConstant, key, setError)
		}
	}
	return messageCatalog, nil
}

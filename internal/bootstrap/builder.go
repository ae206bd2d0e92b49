package bootstrap

import (
	"fmt"
	"strings"

	"github.com/temirov/isvdebug/internal/localization"
)

const (
	projectCreateTopicConstant               = "project:create"
	configSetTopicConstant                   = "config:set"
	metadataRetrieveTopicConstant            = "mdapi:retrieve"
	metadataConvertTopicConstant             = "mdapi:convert"
	packageInstalledListTopicConstant        = "package:installed:list"
	projectNameFlagConstant                  = "--projectname"
	outputDirectoryFlagConstant              = "--outputdir"
	retrieveTargetFlagConstant               = "-r"
	unpackagedManifestFlagConstant           = "-k"
	packageNamesFlagConstant                 = "-p"
	targetUsernameFlagConstant               = "-u"
	convertRootFlagConstant                  = "-r"
	convertDestinationFlagConstant           = "-d"
	jsonFlagConstant                         = "--json"
	sessionIDConfigTemplateConstant          = "isvDebuggerSid=%s"
	loginURLConfigTemplateConstant           = "isvDebuggerUrl=%s"
	instanceURLConfigTemplateConstant        = "instanceUrl=%s"
	packageNamesSeparatorConstant            = ","
	packageNamesFieldNameConstant            = "packageNames"
	packageNameFieldNameConstant             = "packageName"
	emptyPackageListMessageConstant          = "at least one package name is required"
	emptyPackageNameMessageConstant          = "package name must be non-empty"
	nonLocalPackageNameMessageConstant       = "package name must be a single directory name"
	emptyPackageEntryMessageTemplateConstant = "package name at index %d must be non-empty"
	builderMisuseErrorTemplateConstant       = "%s %s: %s"
)

// BuilderMisuseError reports a build request that violates a builder precondition.
type BuilderMisuseError struct {
	Step      Step
	FieldName string
	Message   string
}

// Error describes the violated precondition.
func (misuseError BuilderMisuseError) Error() string {
	return fmt.Sprintf(builderMisuseErrorTemplateConstant, misuseError.Step, misuseError.FieldName, misuseError.Message)
}

// CommandBuilder constructs the bootstrap command descriptors.
// Every method is pure: identical inputs yield identical descriptors.
type CommandBuilder struct {
	localizer localization.Localizer
}

// NewCommandBuilder constructs a builder that localizes descriptions through localizer.
// A nil localizer defaults to English.
func NewCommandBuilder(localizer localization.Localizer) *CommandBuilder {
	if localizer == nil {
		localizer = localization.NewEnglishLocalizer()
	}
	return &CommandBuilder{localizer: localizer}
}

// BuildCreateProjectCommand builds step 1.
func (builder *CommandBuilder) BuildCreateProjectCommand(pipelineContext PipelineContext) CommandDescriptor {
	return newCommandDescriptor(
		StepCreateProject,
		builder.localizer.Localize(localization.KeyStepCreateProject),
		projectCreateTopicConstant,
		projectNameFlagConstant, pipelineContext.ProjectName,
		outputDirectoryFlagConstant, pipelineContext.ProjectURI,
	)
}

// BuildConfigureProjectCommand builds step 2.
func (builder *CommandBuilder) BuildConfigureProjectCommand(pipelineContext PipelineContext) CommandDescriptor {
	return newCommandDescriptor(
		StepConfigureProject,
		builder.localizer.Localize(localization.KeyStepConfigureProject),
		configSetTopicConstant,
		fmt.Sprintf(sessionIDConfigTemplateConstant, pipelineContext.SessionID),
		fmt.Sprintf(loginURLConfigTemplateConstant, pipelineContext.LoginURL),
		fmt.Sprintf(instanceURLConfigTemplateConstant, pipelineContext.LoginURL),
	)
}

// BuildRetrieveOrgSourceCommand builds step 3.
func (builder *CommandBuilder) BuildRetrieveOrgSourceCommand(pipelineContext PipelineContext) CommandDescriptor {
	return newCommandDescriptor(
		StepRetrieveOrgSource,
		builder.localizer.Localize(localization.KeyStepRetrieveOrgSource),
		metadataRetrieveTopicConstant,
		retrieveTargetFlagConstant, MetadataTemporaryDirectory,
		unpackagedManifestFlagConstant, packageManifestPath(),
		targetUsernameFlagConstant, pipelineContext.SessionID,
	)
}

// BuildMetadataAPIConvertOrgSourceCommand builds step 4.
func (builder *CommandBuilder) BuildMetadataAPIConvertOrgSourceCommand(pipelineContext PipelineContext) CommandDescriptor {
	return newCommandDescriptor(
		StepConvertOrgSource,
		builder.localizer.Localize(localization.KeyStepConvertOrgSource),
		metadataConvertTopicConstant,
		convertRootFlagConstant, unpackagedSourcePath(),
		convertDestinationFlagConstant, OrgSourceDestination,
	)
}

// BuildPackageInstalledListAsJSONCommand builds step 5.
func (builder *CommandBuilder) BuildPackageInstalledListAsJSONCommand(pipelineContext PipelineContext) CommandDescriptor {
	return newCommandDescriptor(
		StepListInstalledPackages,
		builder.localizer.Localize(localization.KeyStepListInstalledPackages),
		packageInstalledListTopicConstant,
		targetUsernameFlagConstant, pipelineContext.SessionID,
		jsonFlagConstant,
	)
}

// BuildRetrievePackagesSourceCommand builds step 6. Package names are joined in the supplied order.
func (builder *CommandBuilder) BuildRetrievePackagesSourceCommand(pipelineContext PipelineContext, packageNames []string) (CommandDescriptor, error) {
	if len(packageNames) == 0 {
		return CommandDescriptor{}, BuilderMisuseError{Step: StepRetrievePackagesSource, FieldName: packageNamesFieldNameConstant, Message: emptyPackageListMessageConstant}
	}
	for packageIndex, packageName := range packageNames {
		if len(packageName) == 0 {
			return CommandDescriptor{}, BuilderMisuseError{Step: StepRetrievePackagesSource, FieldName: packageNamesFieldNameConstant, Message: fmt.Sprintf(emptyPackageEntryMessageTemplateConstant, packageIndex)}
		}
	}

	return newCommandDescriptor(
		StepRetrievePackagesSource,
		builder.localizer.Localize(localization.KeyStepRetrievePackagesSource),
		metadataRetrieveTopicConstant,
		retrieveTargetFlagConstant, MetadataTemporaryDirectory,
		packageNamesFlagConstant, strings.Join(packageNames, packageNamesSeparatorConstant),
		targetUsernameFlagConstant, pipelineContext.SessionID,
	), nil
}

// BuildMetadataAPIConvertPackageSourceCommand builds step 7 for a single package.
func (builder *CommandBuilder) BuildMetadataAPIConvertPackageSourceCommand(packageName string) (CommandDescriptor, error) {
	if len(packageName) == 0 {
		return CommandDescriptor{}, BuilderMisuseError{Step: StepConvertPackageSource, FieldName: packageNameFieldNameConstant, Message: emptyPackageNameMessageConstant}
	}
	if !isLocalPackageName(packageName) {
		return CommandDescriptor{}, BuilderMisuseError{Step: StepConvertPackageSource, FieldName: packageNameFieldNameConstant, Message: nonLocalPackageNameMessageConstant}
	}

	return newCommandDescriptor(
		StepConvertPackageSource,
		builder.localizer.Localize(localization.KeyStepConvertPackageSource, packageName),
		metadataConvertTopicConstant,
		convertRootFlagConstant, retrievedPackagePath(packageName),
		convertDestinationFlagConstant, convertedPackagePath(packageName),
	), nil
}

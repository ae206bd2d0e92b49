package isvdebugger

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/isvdebug/internal/bootstrap"
	"github.com/temirov/isvdebug/internal/execshell"
	"github.com/temirov/isvdebug/internal/forceide"
	"github.com/temirov/isvdebug/internal/prompt"
	"github.com/temirov/isvdebug/internal/ui"
)

const (
	planUseConstant                       = "plan"
	planShortDescriptionConstant          = "Show the sfdx commands a bootstrap would run"
	planLongDescriptionConstant           = "plan prints the ordered sfdx commands for a forceide:// URI without contacting the org. Installed packages are supplied with --package."
	planMissingURIMessageConstant         = "plan requires --uri"
	planMissingProjectNameMessageConstant = "plan requires --project-name"
	flagPackageNameConstant               = "package"
	flagPackageDescriptionConstant        = "Installed package name to include, in order (repeatable)"
	flagRevealSessionNameConstant         = "reveal-session"
	flagRevealSessionDescriptionConstant  = "Show the session ID instead of masking it"
	commandLineSeparatorConstant          = " "
)

var (
	errPlanMissingURI         = errors.New(planMissingURIMessageConstant)
	errPlanMissingProjectName = errors.New(planMissingProjectNameMessageConstant)
)

// PlanCommandBuilder assembles the plan command.
type PlanCommandBuilder struct {
	ConfigurationProvider ConfigurationProvider
	FileSystem            bootstrap.FileSystem
}

// Build constructs the plan command.
func (builder *PlanCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   planUseConstant,
		Short: planShortDescriptionConstant,
		Long:  planLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagURINameConstant, "", flagURIDescriptionConstant)
	command.Flags().String(flagProjectNameNameConstant, "", flagProjectNameDescriptionConstant)
	command.Flags().String(flagOutputDirectoryNameConstant, "", flagOutputDirectoryDescriptionConstant)
	command.Flags().StringSlice(flagPackageNameConstant, nil, flagPackageDescriptionConstant)
	command.Flags().Bool(flagRevealSessionNameConstant, false, flagRevealSessionDescriptionConstant)

	return command, nil
}

func (builder *PlanCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	localizer := configuration.Localizer()

	uriValue, _ := command.Flags().GetString(flagURINameConstant)
	if len(strings.TrimSpace(uriValue)) == 0 {
		return errPlanMissingURI
	}
	credentials, parseError := forceide.Parse(uriValue)
	if parseError != nil {
		return errors.New(forceide.RejectionMessage(localizer, parseError))
	}

	projectName, _ := command.Flags().GetString(flagProjectNameNameConstant)
	projectName = strings.TrimSpace(projectName)
	if len(projectName) == 0 {
		return errPlanMissingProjectName
	}

	outputDirectory := configuration.OutputDirectory
	if command.Flags().Changed(flagOutputDirectoryNameConstant) {
		outputDirectory, _ = command.Flags().GetString(flagOutputDirectoryNameConstant)
	}

	projectGatherer, projectGathererError := bootstrap.NewProjectGatherer(prompt.StaticTextPrompter{}, localizer, builder.FileSystem)
	if projectGathererError != nil {
		return projectGathererError
	}
	pipelineContext, _, projectError := projectGatherer.Gather(command.Context(), credentials, bootstrap.ProjectSettings{
		ProjectName:     projectName,
		OutputDirectory: outputDirectory,
	})
	if projectError != nil {
		return projectError
	}

	packageNames, _ := command.Flags().GetStringSlice(flagPackageNameConstant)
	revealSession, _ := command.Flags().GetBool(flagRevealSessionNameConstant)

	descriptors, planError := BuildPlan(bootstrap.NewCommandBuilder(localizer), pipelineContext, packageNames)
	if planError != nil {
		return planError
	}

	rows := make([]ui.PlanRow, 0, len(descriptors))
	for _, descriptor := range descriptors {
		rows = append(rows, ui.PlanRow{
			StepNumber:  int(descriptor.Step()),
			StepName:    descriptor.Step().String(),
			Description: descriptor.Description(),
			CommandLine: renderCommandLine(descriptor, revealSession),
		})
	}

	return ui.NewPlanTableRenderer(command.OutOrStdout()).Render(pipelineContext.ProjectName, pipelineContext.ProjectURI, rows)
}

// BuildPlan returns every descriptor a bootstrap would execute when packageNames are installed.
func BuildPlan(builder *bootstrap.CommandBuilder, pipelineContext bootstrap.PipelineContext, packageNames []string) ([]bootstrap.CommandDescriptor, error) {
	descriptors := []bootstrap.CommandDescriptor{
		builder.BuildCreateProjectCommand(pipelineContext),
		builder.BuildConfigureProjectCommand(pipelineContext),
		builder.BuildRetrieveOrgSourceCommand(pipelineContext),
		builder.BuildMetadataAPIConvertOrgSourceCommand(pipelineContext),
		builder.BuildPackageInstalledListAsJSONCommand(pipelineContext),
	}
	if len(packageNames) == 0 {
		return descriptors, nil
	}

	retrieveDescriptor, retrieveError := builder.BuildRetrievePackagesSourceCommand(pipelineContext, packageNames)
	if retrieveError != nil {
		return nil, retrieveError
	}
	descriptors = append(descriptors, retrieveDescriptor)

	for _, packageName := range packageNames {
		convertDescriptor, convertError := builder.BuildMetadataAPIConvertPackageSourceCommand(packageName)
		if convertError != nil {
			return nil, convertError
		}
		descriptors = append(descriptors, convertDescriptor)
	}
	return descriptors, nil
}

func renderCommandLine(descriptor bootstrap.CommandDescriptor, revealSession bool) string {
	if revealSession {
		return descriptor.CommandLine()
	}
	commandParts := append([]string{string(execshell.CommandSalesforceCLI)}, execshell.RedactArguments(descriptor.ShellArguments())...)
	return strings.Join(commandParts, commandLineSeparatorConstant)
}

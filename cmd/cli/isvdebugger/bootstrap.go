package isvdebugger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/isvdebug/internal/bootstrap"
	"github.com/temirov/isvdebug/internal/execshell"
	"github.com/temirov/isvdebug/internal/forceide"
	"github.com/temirov/isvdebug/internal/localization"
	"github.com/temirov/isvdebug/internal/prompt"
	"github.com/temirov/isvdebug/internal/ui"
)

const (
	bootstrapUseConstant                    = "bootstrap"
	bootstrapShortDescriptionConstant       = "Create an ISV debugger project from a forceide:// URI"
	bootstrapLongDescriptionConstant        = "bootstrap creates an sfdx project wired to a subscriber org session, retrieves the org source and installed package sources, and converts them to source format."
	bootstrapExecutionErrorTemplateConstant = "bootstrap failed: %w"
	unexpectedArgumentsMessageConstant      = "command does not accept positional arguments"
	rejectedURIMessageConstant              = "forceide URI rejected"
	flagURINameConstant                     = "uri"
	flagURIDescriptionConstant              = "forceide:// URI copied from the subscriber org; prompts when omitted"
	flagProjectNameNameConstant             = "project-name"
	flagProjectNameDescriptionConstant      = "Name of the project directory to create; prompts when omitted"
	flagOutputDirectoryNameConstant         = "output-dir"
	flagOutputDirectoryDescriptionConstant  = "Directory in which the project is created"
	flagDryRunNameConstant                  = "dry-run"
	flagDryRunDescriptionConstant           = "Print the sfdx steps without running them"
	flagSalesforceCLINameConstant           = "sfdx-path"
	flagSalesforceCLIDescriptionConstant    = "Path to the sfdx executable; PATH lookup when empty"
	bootstrapCancelledLogMessageConstant    = "bootstrap cancelled"
	bootstrapCompletedLogMessageConstant    = "bootstrap finished"
	outputLineTemplateConstant              = "%s\n"
	logFieldProjectDirectoryConstant        = "project_directory"
	logFieldStepCountConstant               = "step_count"
)

var (
	errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)
	errRejectedURI         = errors.New(rejectedURIMessageConstant)
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the current command configuration.
type ConfigurationProvider func() CommandConfiguration

// PrompterFactory creates the interactive prompter for a command invocation.
type PrompterFactory func(command *cobra.Command) forceide.TextPrompter

// BootstrapCommandBuilder assembles the bootstrap command.
type BootstrapCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConsoleLoggerProvider LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Executor              bootstrap.SalesforceCLIExecutor
	FileSystem            bootstrap.FileSystem
	PrompterFactory       PrompterFactory
}

type bootstrapOptions struct {
	uri               string
	uriProvided       bool
	projectName       string
	outputDirectory   string
	dryRun            bool
	salesforceCLIPath string
}

// Build constructs the bootstrap command.
func (builder *BootstrapCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   bootstrapUseConstant,
		Short: bootstrapShortDescriptionConstant,
		Long:  bootstrapLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagURINameConstant, "", flagURIDescriptionConstant)
	command.Flags().String(flagProjectNameNameConstant, "", flagProjectNameDescriptionConstant)
	command.Flags().String(flagOutputDirectoryNameConstant, "", flagOutputDirectoryDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)
	command.Flags().String(flagSalesforceCLINameConstant, "", flagSalesforceCLIDescriptionConstant)

	return command, nil
}

func (builder *BootstrapCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := builder.resolveConfiguration()
	options := builder.parseOptions(command, configuration)
	localizer := configuration.Localizer()
	logger := resolveLogger(builder.LoggerProvider)
	output := command.OutOrStdout()

	interactivePrompter := builder.resolvePrompter(command)
	uriPrompter := interactivePrompter
	if options.uriProvided {
		uriPrompter = prompt.StaticTextPrompter{Value: options.uri}
	}

	gatherer, gathererError := forceide.NewGatherer(uriPrompter, prompt.NewConsoleErrorNotifier(command.ErrOrStderr(), logger), localizer, logger)
	if gathererError != nil {
		return gathererError
	}
	gatherResult, gatherError := gatherer.Gather(command.Context())
	if gatherError != nil {
		return fmt.Errorf(bootstrapExecutionErrorTemplateConstant, gatherError)
	}

	continueResponse, proceed := gatherResult.(forceide.ContinueResponse)
	if !proceed {
		logger.Info(bootstrapCancelledLogMessageConstant)
		writeLine(output, localizer.Localize(localization.KeyBootstrapCancelled))
		if options.uriProvided {
			return errRejectedURI
		}
		return nil
	}

	projectGatherer, projectGathererError := bootstrap.NewProjectGatherer(interactivePrompter, localizer, builder.FileSystem)
	if projectGathererError != nil {
		return projectGathererError
	}
	pipelineContext, projectReady, projectError := projectGatherer.Gather(command.Context(), continueResponse.Data, bootstrap.ProjectSettings{
		ProjectName:     options.projectName,
		OutputDirectory: options.outputDirectory,
	})
	if projectError != nil {
		return fmt.Errorf(bootstrapExecutionErrorTemplateConstant, projectError)
	}
	if !projectReady {
		logger.Info(bootstrapCancelledLogMessageConstant)
		writeLine(output, localizer.Localize(localization.KeyBootstrapCancelled))
		return nil
	}

	executor, executorError := builder.resolveExecutor(logger, options)
	if executorError != nil {
		return executorError
	}

	runner, runnerError := bootstrap.NewRunner(bootstrap.RunnerDependencies{
		Executor:   executor,
		Builder:    bootstrap.NewCommandBuilder(localizer),
		FileSystem: builder.FileSystem,
		Localizer:  localizer,
		Logger:     logger,
		Output:     output,
	}, bootstrap.RunnerOptions{DryRun: options.dryRun, APIVersion: configuration.APIVersion})
	if runnerError != nil {
		return runnerError
	}

	summary, runError := runner.Run(command.Context(), pipelineContext)
	if runError != nil {
		var existsError bootstrap.ProjectExistsError
		if errors.As(runError, &existsError) {
			return errors.New(localizer.Localize(localization.KeyProjectAlreadyExists, pipelineContext.ProjectName, pipelineContext.ProjectURI))
		}
		return fmt.Errorf(bootstrapExecutionErrorTemplateConstant, runError)
	}

	logger.Info(bootstrapCompletedLogMessageConstant, zap.String(logFieldProjectDirectoryConstant, summary.ProjectDirectory), zap.Int(logFieldStepCountConstant, len(summary.Descriptors)))
	if !summary.DryRun {
		writeLine(output, localizer.Localize(localization.KeyBootstrapCompleted, pipelineContext.ProjectName, pipelineContext.ProjectURI))
	}
	return nil
}

func (builder *BootstrapCommandBuilder) parseOptions(command *cobra.Command, configuration CommandConfiguration) bootstrapOptions {
	uriValue, _ := command.Flags().GetString(flagURINameConstant)
	projectNameValue, _ := command.Flags().GetString(flagProjectNameNameConstant)

	options := bootstrapOptions{
		uri:               uriValue,
		uriProvided:       command.Flags().Changed(flagURINameConstant),
		projectName:       strings.TrimSpace(projectNameValue),
		outputDirectory:   configuration.OutputDirectory,
		dryRun:            configuration.DryRun,
		salesforceCLIPath: configuration.SalesforceCLIPath,
	}

	if command.Flags().Changed(flagOutputDirectoryNameConstant) {
		options.outputDirectory, _ = command.Flags().GetString(flagOutputDirectoryNameConstant)
	}
	if command.Flags().Changed(flagDryRunNameConstant) {
		options.dryRun, _ = command.Flags().GetBool(flagDryRunNameConstant)
	}
	if command.Flags().Changed(flagSalesforceCLINameConstant) {
		options.salesforceCLIPath, _ = command.Flags().GetString(flagSalesforceCLINameConstant)
	}

	return options
}

func (builder *BootstrapCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *BootstrapCommandBuilder) resolvePrompter(command *cobra.Command) forceide.TextPrompter {
	if builder.PrompterFactory != nil {
		if prompter := builder.PrompterFactory(command); prompter != nil {
			return prompter
		}
	}
	if inputFile, isFile := command.InOrStdin().(*os.File); isFile {
		return prompt.NewTextPrompter(inputFile, command.ErrOrStderr())
	}
	return prompt.NewReaderTextPrompter(command.InOrStdin(), command.ErrOrStderr())
}

func (builder *BootstrapCommandBuilder) resolveExecutor(logger *zap.Logger, options bootstrapOptions) (bootstrap.SalesforceCLIExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}
	if options.dryRun {
		return nil, nil
	}

	commandRunner := execshell.NewOSCommandRunner().WithExecutablePath(execshell.CommandSalesforceCLI, options.salesforceCLIPath)
	eventLogger := ui.NewConsoleCommandEventLogger(resolveLogger(builder.ConsoleLoggerProvider))
	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, commandRunner, eventLogger)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func writeLine(writer io.Writer, line string) {
	fmt.Fprintf(writer, outputLineTemplateConstant, line)
}

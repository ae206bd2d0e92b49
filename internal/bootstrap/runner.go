package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/isvdebug/internal/execshell"
	"github.com/temirov/isvdebug/internal/localization"
)

const (
	runnerDependenciesMessageConstant    = "bootstrap runner requires a Salesforce CLI executor"
	stepErrorTemplateConstant            = "bootstrap step %s failed: %v"
	projectExistsErrorTemplateConstant   = "project directory %s already exists"
	invalidContextErrorTemplateConstant  = "pipeline context is missing %s"
	manifestWriteErrorTemplateConstant   = "unable to write package manifest: %w"
	recordWriteErrorTemplateConstant     = "unable to record installed package %s: %w"
	cleanupErrorTemplateConstant         = "unable to remove %s: %w"
	projectInspectErrorTemplateConstant  = "unable to inspect project directory %s: %w"
	stepStartedLogMessageConstant        = "bootstrap step started"
	stepSkippedLogMessageConstant        = "bootstrap step skipped in dry run"
	packagesDiscoveredLogMessageConstant = "installed packages discovered"
	bootstrapCompletedLogMessageConstant = "bootstrap completed"
	logFieldStepConstant                 = "step"
	logFieldDescriptionConstant          = "description"
	logFieldWorkingDirectoryConstant     = "working_directory"
	logFieldPackageCountConstant         = "package_count"
	logFieldProjectDirectoryConstant     = "project_directory"
	outputLineTemplateConstant           = "%s\n"
	contextFieldLoginURLConstant         = "login URL"
	contextFieldSessionIDConstant        = "session ID"
	contextFieldProjectNameConstant      = "project name"
	contextFieldProjectURIConstant       = "project URI"
)

const (
	directoryPermissionsConstant fs.FileMode = 0o755
	filePermissionsConstant      fs.FileMode = 0o644
)

// ErrExecutorNotConfigured indicates the runner was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(runnerDependenciesMessageConstant)

// SalesforceCLIExecutor runs sfdx invocations.
type SalesforceCLIExecutor interface {
	ExecuteSalesforceCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// StepError wraps the failure of a single pipeline step.
type StepError struct {
	Step        Step
	Description string
	Cause       error
}

// Error describes the failed step.
func (stepError StepError) Error() string {
	return fmt.Sprintf(stepErrorTemplateConstant, stepError.Step, stepError.Cause)
}

// Unwrap exposes the underlying failure.
func (stepError StepError) Unwrap() error {
	return stepError.Cause
}

// ProjectExistsError reports an output location that already holds the project directory.
type ProjectExistsError struct {
	ProjectDirectory string
}

// Error describes the conflicting directory.
func (existsError ProjectExistsError) Error() string {
	return fmt.Sprintf(projectExistsErrorTemplateConstant, existsError.ProjectDirectory)
}

// InvalidPipelineContextError reports a pipeline context with a required value missing.
type InvalidPipelineContextError struct {
	FieldName string
}

// Error describes the missing value.
func (contextError InvalidPipelineContextError) Error() string {
	return fmt.Sprintf(invalidContextErrorTemplateConstant, contextError.FieldName)
}

// RunnerDependencies configures collaborators for Runner.
type RunnerDependencies struct {
	Executor   SalesforceCLIExecutor
	Builder    *CommandBuilder
	FileSystem FileSystem
	Localizer  localization.Localizer
	Logger     *zap.Logger
	// Output receives one line per step description. A nil interface discards them.
	Output     io.Writer
}

// RunnerOptions captures execution modifiers.
type RunnerOptions struct {
	DryRun     bool
	APIVersion string
}

// Summary describes a completed or previewed bootstrap run.
type Summary struct {
	ProjectDirectory  string
	Descriptors       []CommandDescriptor
	InstalledPackages []InstalledPackage
	DryRun            bool
}

// Runner executes the bootstrap pipeline one descriptor at a time.
type Runner struct {
	executor   SalesforceCLIExecutor
	builder    *CommandBuilder
	fileSystem FileSystem
	localizer  localization.Localizer
	logger     *zap.Logger
	output     io.Writer
	options    RunnerOptions
}

// NewRunner constructs a Runner. Missing optional collaborators fall back to defaults.
func NewRunner(dependencies RunnerDependencies, options RunnerOptions) (*Runner, error) {
	if dependencies.Executor == nil && !options.DryRun {
		return nil, ErrExecutorNotConfigured
	}

	runner := &Runner{
		executor:   dependencies.Executor,
		builder:    dependencies.Builder,
		fileSystem: dependencies.FileSystem,
		localizer:  dependencies.Localizer,
		logger:     dependencies.Logger,
		output:     dependencies.Output,
		options:    options,
	}
	if runner.localizer == nil {
		runner.localizer = localization.NewEnglishLocalizer()
	}
	if runner.builder == nil {
		runner.builder = NewCommandBuilder(runner.localizer)
	}
	if runner.fileSystem == nil {
		runner.fileSystem = OSFileSystem{}
	}
	if runner.logger == nil {
		runner.logger = zap.NewNop()
	}
	if runner.output == nil {
		runner.output = io.Discard
	}
	if len(strings.TrimSpace(runner.options.APIVersion)) == 0 {
		runner.options.APIVersion = DefaultMetadataAPIVersion
	}
	return runner, nil
}

// Run executes every pipeline step in order and stops at the first failure.
func (runner *Runner) Run(executionContext context.Context, pipelineContext PipelineContext) (Summary, error) {
	if validationError := validatePipelineContext(pipelineContext); validationError != nil {
		return Summary{}, validationError
	}

	projectDirectory := filepath.Join(pipelineContext.ProjectURI, pipelineContext.ProjectName)
	summary := Summary{ProjectDirectory: projectDirectory, DryRun: runner.options.DryRun}

	if existenceError := runner.ensureProjectAbsent(projectDirectory); existenceError != nil {
		return summary, existenceError
	}

	if _, stepError := runner.executeStep(executionContext, &summary, runner.builder.BuildCreateProjectCommand(pipelineContext), pipelineContext.ProjectURI); stepError != nil {
		return summary, stepError
	}
	if _, stepError := runner.executeStep(executionContext, &summary, runner.builder.BuildConfigureProjectCommand(pipelineContext), projectDirectory); stepError != nil {
		return summary, stepError
	}

	if manifestError := runner.writePackageManifest(projectDirectory); manifestError != nil {
		return summary, manifestError
	}
	if _, stepError := runner.executeStep(executionContext, &summary, runner.builder.BuildRetrieveOrgSourceCommand(pipelineContext), projectDirectory); stepError != nil {
		return summary, stepError
	}
	if _, stepError := runner.executeStep(executionContext, &summary, runner.builder.BuildMetadataAPIConvertOrgSourceCommand(pipelineContext), projectDirectory); stepError != nil {
		return summary, stepError
	}

	packageListDescriptor := runner.builder.BuildPackageInstalledListAsJSONCommand(pipelineContext)
	packageListResult, stepError := runner.executeStep(executionContext, &summary, packageListDescriptor, projectDirectory)
	if stepError != nil {
		return summary, stepError
	}

	if !runner.options.DryRun {
		installedPackages, decodeError := DecodeInstalledPackages([]byte(packageListResult.StandardOutput))
		if decodeError != nil {
			return summary, StepError{Step: StepListInstalledPackages, Description: packageListDescriptor.Description(), Cause: decodeError}
		}
		summary.InstalledPackages = installedPackages
	}
	runner.logger.Info(packagesDiscoveredLogMessageConstant, zap.Int(logFieldPackageCountConstant, len(summary.InstalledPackages)))

	if packagesError := runner.processPackages(executionContext, &summary, pipelineContext, projectDirectory); packagesError != nil {
		return summary, packagesError
	}

	if cleanupError := runner.removeTemporaryMetadata(projectDirectory); cleanupError != nil {
		return summary, cleanupError
	}

	runner.logger.Info(bootstrapCompletedLogMessageConstant, zap.String(logFieldProjectDirectoryConstant, projectDirectory))
	return summary, nil
}

func (runner *Runner) processPackages(executionContext context.Context, summary *Summary, pipelineContext PipelineContext, projectDirectory string) error {
	if len(summary.InstalledPackages) == 0 {
		runner.writeOutputLine(runner.localizer.Localize(localization.KeyBootstrapNoInstalledPackages))
		return nil
	}

	retrieveDescriptor, buildError := runner.builder.BuildRetrievePackagesSourceCommand(pipelineContext, PackageNames(summary.InstalledPackages))
	if buildError != nil {
		return buildError
	}
	if _, stepError := runner.executeStep(executionContext, summary, retrieveDescriptor, projectDirectory); stepError != nil {
		return stepError
	}

	for _, installedPackage := range summary.InstalledPackages {
		convertDescriptor, convertBuildError := runner.builder.BuildMetadataAPIConvertPackageSourceCommand(installedPackage.Name)
		if convertBuildError != nil {
			return convertBuildError
		}
		if _, stepError := runner.executeStep(executionContext, summary, convertDescriptor, projectDirectory); stepError != nil {
			return stepError
		}
		if recordError := runner.writeInstalledPackageRecord(projectDirectory, installedPackage); recordError != nil {
			return recordError
		}
	}
	return nil
}

func (runner *Runner) executeStep(executionContext context.Context, summary *Summary, descriptor CommandDescriptor, workingDirectory string) (execshell.ExecutionResult, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return execshell.ExecutionResult{}, StepError{Step: descriptor.Step(), Description: descriptor.Description(), Cause: contextError}
	}

	summary.Descriptors = append(summary.Descriptors, descriptor)
	runner.writeOutputLine(descriptor.Description())

	stepFields := []zap.Field{
		zap.Stringer(logFieldStepConstant, descriptor.Step()),
		zap.String(logFieldDescriptionConstant, descriptor.Description()),
		zap.String(logFieldWorkingDirectoryConstant, workingDirectory),
	}
	if runner.options.DryRun {
		runner.logger.Info(stepSkippedLogMessageConstant, stepFields...)
		return execshell.ExecutionResult{}, nil
	}
	runner.logger.Info(stepStartedLogMessageConstant, stepFields...)

	shellCommand := descriptor.ShellCommand(workingDirectory)
	executionResult, executionError := runner.executor.ExecuteSalesforceCLI(executionContext, shellCommand.Details)
	if executionError != nil {
		return execshell.ExecutionResult{}, StepError{Step: descriptor.Step(), Description: descriptor.Description(), Cause: executionError}
	}
	return executionResult, nil
}

func (runner *Runner) ensureProjectAbsent(projectDirectory string) error {
	if runner.options.DryRun {
		return nil
	}
	_, statError := runner.fileSystem.Stat(projectDirectory)
	switch {
	case statError == nil:
		return ProjectExistsError{ProjectDirectory: projectDirectory}
	case errors.Is(statError, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf(projectInspectErrorTemplateConstant, projectDirectory, statError)
	}
}

func (runner *Runner) writePackageManifest(projectDirectory string) error {
	if runner.options.DryRun {
		return nil
	}
	manifestContent, manifestError := BuildPackageManifest(runner.options.APIVersion)
	if manifestError != nil {
		return manifestError
	}
	manifestDirectory := filepath.Join(projectDirectory, filepath.FromSlash(MetadataTemporaryDirectory))
	if mkdirError := runner.fileSystem.MkdirAll(manifestDirectory, directoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(manifestWriteErrorTemplateConstant, mkdirError)
	}
	manifestPath := filepath.Join(projectDirectory, filepath.FromSlash(packageManifestPath()))
	if writeError := runner.fileSystem.WriteFile(manifestPath, manifestContent, filePermissionsConstant); writeError != nil {
		return fmt.Errorf(manifestWriteErrorTemplateConstant, writeError)
	}
	return nil
}

func (runner *Runner) writeInstalledPackageRecord(projectDirectory string, installedPackage InstalledPackage) error {
	recordContent, encodingError := encodeInstalledPackageRecord(installedPackage)
	if encodingError != nil {
		return encodingError
	}
	recordPath := filepath.Join(projectDirectory, filepath.FromSlash(installedPackageRecordPath(installedPackage.Name)))
	if mkdirError := runner.fileSystem.MkdirAll(filepath.Dir(recordPath), directoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(recordWriteErrorTemplateConstant, installedPackage.Name, mkdirError)
	}
	if writeError := runner.fileSystem.WriteFile(recordPath, recordContent, filePermissionsConstant); writeError != nil {
		return fmt.Errorf(recordWriteErrorTemplateConstant, installedPackage.Name, writeError)
	}
	return nil
}

func (runner *Runner) removeTemporaryMetadata(projectDirectory string) error {
	if runner.options.DryRun {
		return nil
	}
	temporaryDirectory := filepath.Join(projectDirectory, filepath.FromSlash(MetadataTemporaryDirectory))
	if removeError := runner.fileSystem.RemoveAll(temporaryDirectory); removeError != nil {
		return fmt.Errorf(cleanupErrorTemplateConstant, temporaryDirectory, removeError)
	}
	return nil
}

func (runner *Runner) writeOutputLine(line string) {
	fmt.Fprintf(runner.output, outputLineTemplateConstant, line)
}

func validatePipelineContext(pipelineContext PipelineContext) error {
	requiredValues := []struct {
		fieldName string
		value     string
	}{
		{fieldName: contextFieldLoginURLConstant, value: pipelineContext.LoginURL},
		{fieldName: contextFieldSessionIDConstant, value: pipelineContext.SessionID},
		{fieldName: contextFieldProjectNameConstant, value: pipelineContext.ProjectName},
		{fieldName: contextFieldProjectURIConstant, value: pipelineContext.ProjectURI},
	}
	for _, requiredValue := range requiredValues {
		if len(strings.TrimSpace(requiredValue.value)) == 0 {
			return InvalidPipelineContextError{FieldName: requiredValue.fieldName}
		}
	}
	return nil
}

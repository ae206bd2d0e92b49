package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
	redactedValueConstant                   = "********"
	assignmentSeparatorConstant             = "="
)

const (
	forceProjectCreateTopicConstant        = "force:project:create"
	forceConfigSetTopicConstant            = "force:config:set"
	forceMetadataRetrieveTopicConstant     = "force:mdapi:retrieve"
	forceMetadataConvertTopicConstant      = "force:mdapi:convert"
	forcePackageInstalledListTopicConstant = "force:package:installed:list"
	projectNameFlagConstant                = "--projectname"
	outputDirectoryFlagConstant            = "--outputdir"
	targetUsernameFlagConstant             = "-u"
	packageNamesFlagConstant               = "-p"
	retrieveTargetFlagConstant             = "-r"
	convertDestinationFlagConstant         = "-d"
	sessionIDConfigKeyConstant             = "isvDebuggerSid"
)

const (
	projectCreateStartTemplateConstant            = "Creating project %s in %s"
	projectCreateSuccessTemplateConstant          = "Created project %s in %s"
	projectCreateFailureTemplateConstant          = "Failed to create project %s in %s (exit code %d%s)"
	projectCreateExecutionFailureTemplateConstant = "Unable to create project %s in %s: %s"
	configSetStartTemplateConstant                = "Configuring project in %s"
	configSetSuccessTemplateConstant              = "Configured project in %s"
	configSetFailureTemplateConstant              = "Failed to configure project in %s (exit code %d%s)"
	configSetExecutionFailureTemplateConstant     = "Unable to configure project in %s: %s"
	retrieveStartTemplateConstant                 = "Retrieving %s into %s"
	retrieveSuccessTemplateConstant               = "Retrieved %s into %s"
	retrieveFailureTemplateConstant               = "Failed to retrieve %s into %s (exit code %d%s)"
	retrieveExecutionFailureTemplateConstant      = "Unable to retrieve %s into %s: %s"
	retrieveOrgSourceLabelConstant                = "org source"
	retrievePackagesLabelTemplateConstant         = "packages %s"
	convertStartTemplateConstant                  = "Converting %s to %s"
	convertSuccessTemplateConstant                = "Converted %s to %s"
	convertFailureTemplateConstant                = "Failed to convert %s to %s (exit code %d%s)"
	convertExecutionFailureTemplateConstant       = "Unable to convert %s to %s: %s"
	packageListStartTemplateConstant              = "Listing installed packages from %s"
	packageListSuccessTemplateConstant            = "Listed installed packages from %s"
	packageListFailureTemplateConstant            = "Failed to list installed packages from %s (exit code %d%s)"
	packageListExecutionFailureTemplateConstant   = "Unable to list installed packages from %s: %s"
	packageListOrgLabelConstant                   = "the ISV org"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// RedactArguments returns a copy of arguments with session identifiers replaced.
// Session IDs appear as the value of -u and as the isvDebuggerSid config assignment.
func RedactArguments(arguments []string) []string {
	redactedArguments := append([]string{}, arguments...)
	for argumentIndex := range redactedArguments {
		argument := redactedArguments[argumentIndex]
		if strings.HasPrefix(argument, sessionIDConfigKeyConstant+assignmentSeparatorConstant) {
			redactedArguments[argumentIndex] = sessionIDConfigKeyConstant + assignmentSeparatorConstant + redactedValueConstant
			continue
		}
		if argumentIndex > 0 && redactedArguments[argumentIndex-1] == targetUsernameFlagConstant {
			redactedArguments[argumentIndex] = redactedValueConstant
		}
	}
	return redactedArguments
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandSalesforceCLI || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case forceProjectCreateTopicConstant:
		return formatter.describeProjectCreateMessage(command, result, failure, stage)
	case forceConfigSetTopicConstant:
		return formatter.describeConfigSetMessage(command, result, failure, stage)
	case forceMetadataRetrieveTopicConstant:
		return formatter.describeRetrieveMessage(command, result, failure, stage)
	case forceMetadataConvertTopicConstant:
		return formatter.describeConvertMessage(command, result, failure, stage)
	case forcePackageInstalledListTopicConstant:
		return formatter.describePackageListMessage(result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeProjectCreateMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	projectName := formatter.ensureValue(findFlagValue(command.Details.Arguments, projectNameFlagConstant))
	outputDirectory := formatter.ensureValue(findFlagValue(command.Details.Arguments, outputDirectoryFlagConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(projectCreateStartTemplateConstant, projectName, outputDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(projectCreateSuccessTemplateConstant, projectName, outputDirectory)
	case messageStageFailure:
		return fmt.Sprintf(projectCreateFailureTemplateConstant, projectName, outputDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(projectCreateExecutionFailureTemplateConstant, projectName, outputDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeConfigSetMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.ensureValue(command.Details.WorkingDirectory)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(configSetStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(configSetSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(configSetFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(configSetExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeRetrieveMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	subject := retrieveOrgSourceLabelConstant
	if packageNames := findFlagValue(command.Details.Arguments, packageNamesFlagConstant); len(packageNames) > 0 {
		subject = fmt.Sprintf(retrievePackagesLabelTemplateConstant, packageNames)
	}
	target := formatter.ensureValue(findFlagValue(command.Details.Arguments, retrieveTargetFlagConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(retrieveStartTemplateConstant, subject, target)
	case messageStageSuccess:
		return fmt.Sprintf(retrieveSuccessTemplateConstant, subject, target)
	case messageStageFailure:
		return fmt.Sprintf(retrieveFailureTemplateConstant, subject, target, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(retrieveExecutionFailureTemplateConstant, subject, target, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeConvertMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	source := formatter.ensureValue(findFlagValue(command.Details.Arguments, retrieveTargetFlagConstant))
	destination := formatter.ensureValue(findFlagValue(command.Details.Arguments, convertDestinationFlagConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(convertStartTemplateConstant, source, destination)
	case messageStageSuccess:
		return fmt.Sprintf(convertSuccessTemplateConstant, source, destination)
	case messageStageFailure:
		return fmt.Sprintf(convertFailureTemplateConstant, source, destination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(convertExecutionFailureTemplateConstant, source, destination, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describePackageListMessage(result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(packageListStartTemplateConstant, packageListOrgLabelConstant)
	case messageStageSuccess:
		return fmt.Sprintf(packageListSuccessTemplateConstant, packageListOrgLabelConstant)
	case messageStageFailure:
		return fmt.Sprintf(packageListFailureTemplateConstant, packageListOrgLabelConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(packageListExecutionFailureTemplateConstant, packageListOrgLabelConstant, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(RedactArguments(command.Details.Arguments), commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex := 0; argumentIndex < len(arguments)-1; argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == flag {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return emptyStringConstant
}

package bootstrap

import (
	"strings"

	"github.com/temirov/isvdebug/internal/execshell"
)

const (
	forceTopicPrefixConstant      = "force:"
	commandLineSeparatorConstant  = " "
	commandLineExecutableConstant = string(execshell.CommandSalesforceCLI)
)

// PipelineContext carries the values shared by the bootstrap steps.
type PipelineContext struct {
	LoginURL    string
	SessionID   string
	ProjectName string
	ProjectURI  string
}

// CommandDescriptor is an immutable sfdx invocation paired with a localized description.
type CommandDescriptor struct {
	step        Step
	arguments   []string
	description string
}

func newCommandDescriptor(step Step, description string, arguments ...string) CommandDescriptor {
	return CommandDescriptor{step: step, arguments: append([]string{}, arguments...), description: description}
}

// Step identifies the pipeline step that produced the descriptor.
func (descriptor CommandDescriptor) Step() Step {
	return descriptor.step
}

// Arguments returns a copy of the argument vector, starting with the command topic.
func (descriptor CommandDescriptor) Arguments() []string {
	return append([]string{}, descriptor.arguments...)
}

// Description returns the localized, human-readable step description.
func (descriptor CommandDescriptor) Description() string {
	return descriptor.description
}

// ShellArguments returns the arguments as passed to sfdx, with the force topic prefix applied.
func (descriptor CommandDescriptor) ShellArguments() []string {
	shellArguments := descriptor.Arguments()
	if len(shellArguments) > 0 {
		shellArguments[0] = forceTopicPrefixConstant + shellArguments[0]
	}
	return shellArguments
}

// CommandLine renders the full command, for example "sfdx force:project:create ...".
func (descriptor CommandDescriptor) CommandLine() string {
	return strings.Join(append([]string{commandLineExecutableConstant}, descriptor.ShellArguments()...), commandLineSeparatorConstant)
}

// ShellCommand converts the descriptor into an execshell command rooted at workingDirectory.
func (descriptor CommandDescriptor) ShellCommand(workingDirectory string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandSalesforceCLI,
		Details: execshell.CommandDetails{
			Arguments:        descriptor.ShellArguments(),
			WorkingDirectory: workingDirectory,
		},
	}
}

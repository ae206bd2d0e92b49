package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	environmentAssignmentTemplateConstant = "%s=%s"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct {
	executablePaths map[CommandName]string
}

// NewOSCommandRunner constructs a runner backed by os/exec that resolves executables from PATH.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{executablePaths: map[CommandName]string{}}
}

// WithExecutablePath returns a runner that launches command from the provided path instead of PATH lookup.
func (runner *OSCommandRunner) WithExecutablePath(command CommandName, executablePath string) *OSCommandRunner {
	updatedPaths := make(map[CommandName]string, len(runner.executablePaths)+1)
	for existingCommand, existingPath := range runner.executablePaths {
		updatedPaths[existingCommand] = existingPath
	}
	trimmedPath := strings.TrimSpace(executablePath)
	if len(trimmedPath) > 0 {
		updatedPaths[command] = trimmedPath
	}
	return &OSCommandRunner{executablePaths: updatedPaths}
}

// Run executes the supplied command using os/exec.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, runner.resolveExecutable(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := executable.Run()
	result := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			result.ExitCode = exitError.ExitCode()
			return result, nil
		}
		return ExecutionResult{}, runError
	}

	return result, nil
}

func (runner *OSCommandRunner) resolveExecutable(command CommandName) string {
	if runner != nil {
		if executablePath, configured := runner.executablePaths[command]; configured {
			return executablePath
		}
	}
	return string(command)
}

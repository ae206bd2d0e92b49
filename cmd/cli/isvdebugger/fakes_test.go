package isvdebugger

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/temirov/isvdebug/internal/bootstrap"
	"github.com/temirov/isvdebug/internal/execshell"
	"github.com/temirov/isvdebug/internal/forceide"
)

const (
	testPackageListTopicConstant  = "force:package:installed:list"
	testPackageListOutputConstant = `{"status":0,"result":[{"Id":"0A3xx0000000001","SubscriberPackageName":"mypackage_abc","SubscriberPackageNamespace":"abc","SubscriberPackageVersionId":"04txx0000000001","SubscriberPackageVersionName":"Spring","SubscriberPackageVersionNumber":"1.2.0.4"}]}`
)

type recordingExecutor struct {
	packageListOutput string
	invocations       []execshell.CommandDetails
}

func (executor *recordingExecutor) ExecuteSalesforceCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.invocations = append(executor.invocations, details)
	if len(details.Arguments) > 0 && details.Arguments[0] == testPackageListTopicConstant {
		return execshell.ExecutionResult{StandardOutput: executor.packageListOutput}, nil
	}
	return execshell.ExecutionResult{}, nil
}

func (executor *recordingExecutor) commandLines() []string {
	commandLines := make([]string, 0, len(executor.invocations))
	for _, invocation := range executor.invocations {
		commandLines = append(commandLines, strings.Join(invocation.Arguments, " "))
	}
	return commandLines
}

type promptAnswer struct {
	value    string
	provided bool
}

type sequencePrompter struct {
	answers  []promptAnswer
	requests []forceide.PromptRequest
}

func (prompter *sequencePrompter) PromptForText(executionContext context.Context, request forceide.PromptRequest) (string, bool, error) {
	prompter.requests = append(prompter.requests, request)
	if len(prompter.answers) == 0 {
		return "", false, nil
	}
	answer := prompter.answers[0]
	prompter.answers = prompter.answers[1:]
	return answer.value, answer.provided, nil
}

type rootedFileSystem struct {
	bootstrap.OSFileSystem
	root string
}

func (fileSystem rootedFileSystem) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(fileSystem.root, path), nil
}

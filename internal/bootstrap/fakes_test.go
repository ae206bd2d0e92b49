package bootstrap_test

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/isvdebug/internal/execshell"
	"github.com/temirov/isvdebug/internal/forceide"
)

type memoryFileSystem struct {
	existingPaths map[string]bool
	files         map[string][]byte
	directories   []string
	removedPaths  []string
	workingRoot   string
	writeError    error
}

func newMemoryFileSystem() *memoryFileSystem {
	return &memoryFileSystem{existingPaths: map[string]bool{}, files: map[string][]byte{}, workingRoot: "/work"}
}

func (fileSystem *memoryFileSystem) Stat(path string) (fs.FileInfo, error) {
	if fileSystem.existingPaths[path] {
		return nil, nil
	}
	return nil, fs.ErrNotExist
}

func (fileSystem *memoryFileSystem) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(fileSystem.workingRoot, path), nil
}

func (fileSystem *memoryFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	fileSystem.directories = append(fileSystem.directories, path)
	return nil
}

func (fileSystem *memoryFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	if fileSystem.writeError != nil {
		return fileSystem.writeError
	}
	fileSystem.files[path] = append([]byte{}, data...)
	return nil
}

func (fileSystem *memoryFileSystem) RemoveAll(path string) error {
	fileSystem.removedPaths = append(fileSystem.removedPaths, path)
	return nil
}

func (fileSystem *memoryFileSystem) writtenPaths() []string {
	paths := make([]string, 0, len(fileSystem.files))
	for path := range fileSystem.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

type recordedInvocation struct {
	commandLine      string
	workingDirectory string
}

type scriptedExecutor struct {
	outputs        map[string]string
	failures       map[string]error
	invocations    []recordedInvocation
	cancelOnPrefix string
	cancel         context.CancelFunc
}

func (executor *scriptedExecutor) ExecuteSalesforceCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	commandLine := strings.Join(details.Arguments, " ")
	executor.invocations = append(executor.invocations, recordedInvocation{commandLine: commandLine, workingDirectory: details.WorkingDirectory})
	if executor.cancel != nil && strings.HasPrefix(commandLine, executor.cancelOnPrefix) {
		executor.cancel()
	}
	for prefix, failure := range executor.failures {
		if strings.HasPrefix(commandLine, prefix) {
			return execshell.ExecutionResult{}, failure
		}
	}
	for prefix, output := range executor.outputs {
		if strings.HasPrefix(commandLine, prefix) {
			return execshell.ExecutionResult{StandardOutput: output}, nil
		}
	}
	return execshell.ExecutionResult{}, nil
}

func (executor *scriptedExecutor) commandLines() []string {
	commandLines := make([]string, 0, len(executor.invocations))
	for _, invocation := range executor.invocations {
		commandLines = append(commandLines, invocation.commandLine)
	}
	return commandLines
}

type stubTextPrompter struct {
	value    string
	provided bool
	err      error
	requests []forceide.PromptRequest
}

func (prompter *stubTextPrompter) PromptForText(executionContext context.Context, request forceide.PromptRequest) (string, bool, error) {
	prompter.requests = append(prompter.requests, request)
	return prompter.value, prompter.provided, prompter.err
}

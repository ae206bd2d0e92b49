package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/isvdebug/internal/execshell"
	"github.com/temirov/isvdebug/internal/ui"
)

const (
	testWorkingDirectoryConstant              = "/tmp/ws/sfdx-simple"
	testExecutionFailureReasonConstant        = "executable file not found in $PATH"
	testStandardErrorMessageConstant          = "ERROR: INVALID_SESSION_ID"
	testStartMessageExpectationConstant       = "Listing installed packages from the ISV org"
	testSuccessMessageExpectationConstant     = "Listed installed packages from the ISV org"
	testFailureMessageExpectationConstant     = "Failed to list installed packages from the ISV org (exit code 1: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation    = "Unable to list installed packages from the ISV org: " + testExecutionFailureReasonConstant
	testConfigStartMessageExpectationConstant = "Configuring project in " + testWorkingDirectoryConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandSalesforceCLI,
		Details: execshell.CommandDetails{
			Arguments:        []string{"force:package:installed:list", "-u", "0x123", "--json"},
			WorkingDirectory: testWorkingDirectoryConstant,
		},
	}
	configCommand := execshell.ShellCommand{
		Name: execshell.CommandSalesforceCLI,
		Details: execshell.CommandDetails{
			Arguments:        []string{"force:config:set", "isvDebuggerSid=0x123", "isvDebuggerUrl=a.b.c", "instanceUrl=a.b.c"},
			WorkingDirectory: testWorkingDirectoryConstant,
		},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_completed_success",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
		{
			name: "config_set_hides_session",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(configCommand)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testConfigStartMessageExpectationConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := zap.New(observerCore)
			eventLogger := ui.NewConsoleCommandEventLogger(consoleLogger)

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
			require.NotContains(testInstance, entries[0].Message, "0x123")
		})
	}
}

func TestConsoleCommandEventLoggerNilReceiver(testInstance *testing.T) {
	var eventLogger *ui.ConsoleCommandEventLogger
	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.ShellCommand{})
		eventLogger.CommandCompleted(execshell.ShellCommand{}, execshell.ExecutionResult{})
		eventLogger.CommandExecutionFailed(execshell.ShellCommand{}, nil)
	})
}

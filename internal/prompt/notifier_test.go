package prompt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/isvdebug/internal/prompt"
)

func TestConsoleErrorNotifier(testInstance *testing.T) {
	output := &bytes.Buffer{}
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)

	notifier := prompt.NewConsoleErrorNotifier(output, zap.New(observerCore))
	notifier.NotifyError("The forceide:// URI is missing the sessionId parameter")

	require.Equal(testInstance, "The forceide:// URI is missing the sessionId parameter\n", output.String())
	require.Equal(testInstance, 1, observedLogs.Len())
	require.Equal(testInstance, zapcore.WarnLevel, observedLogs.All()[0].Level)
}

func TestIsInteractiveHonorsEnvironment(testInstance *testing.T) {
	testCases := []struct {
		name        string
		environment map[string]string
	}{
		{name: "non_interactive_override", environment: map[string]string{prompt.EnvironmentNonInteractive: "yes"}},
		{name: "continuous_integration", environment: map[string]string{prompt.EnvironmentContinuousIntegration: "true"}},
		{name: "no_terminal", environment: map[string]string{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			lookup := func(key string) (string, bool) {
				value, present := testCase.environment[key]
				return value, present
			}
			require.False(testInstance, prompt.IsInteractive(nil, lookup))
		})
	}
}

package prompt

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/temirov/isvdebug/internal/forceide"
)

const (
	// EnvironmentNonInteractive disables terminal prompts when truthy.
	EnvironmentNonInteractive = "ISVDEBUG_NON_INTERACTIVE"
	// EnvironmentContinuousIntegration is the conventional CI marker.
	EnvironmentContinuousIntegration = "CI"
)

// IsTerminal reports whether file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// IsInteractive reports whether prompts may use the terminal UI.
func IsInteractive(input *os.File, lookupEnvironment func(string) (string, bool)) bool {
	if lookupEnvironment == nil {
		lookupEnvironment = os.LookupEnv
	}
	if isTruthy(lookupEnvironment, EnvironmentNonInteractive) || isTruthy(lookupEnvironment, EnvironmentContinuousIntegration) {
		return false
	}
	return IsTerminal(input)
}

// NewTextPrompter picks the terminal prompter for interactive sessions and a
// line reader otherwise.
func NewTextPrompter(input *os.File, output io.Writer) forceide.TextPrompter {
	if IsInteractive(input, nil) {
		return NewPromptUITextPrompter()
	}
	return NewReaderTextPrompter(input, output)
}

func isTruthy(lookupEnvironment func(string) (string, bool), key string) bool {
	value, present := lookupEnvironment(key)
	if !present {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

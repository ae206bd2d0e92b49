package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/temirov/isvdebug/internal/forceide"
)

const (
	promptLabelWithPlaceholderTemplateConstant = "%s (%s)"
	promptFailureTemplateConstant              = "prompt failed: %w"
)

// promptUIRunner is a variable so tests can replace the interactive prompt.
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// PromptUITextPrompter asks for text on an interactive terminal.
type PromptUITextPrompter struct{}

// NewPromptUITextPrompter constructs a terminal prompter.
func NewPromptUITextPrompter() PromptUITextPrompter {
	return PromptUITextPrompter{}
}

// PromptForText shows the prompt. Ctrl+C and Ctrl+D report the prompt as dismissed.
func (PromptUITextPrompter) PromptForText(executionContext context.Context, request forceide.PromptRequest) (string, bool, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", false, contextError
	}

	label := request.Label
	if len(request.Placeholder) > 0 {
		label = fmt.Sprintf(promptLabelWithPlaceholderTemplateConstant, request.Label, request.Placeholder)
	}

	response, runError := promptUIRunner(promptui.Prompt{Label: label})
	switch {
	case runError == nil:
		return response, true, nil
	case errors.Is(runError, promptui.ErrInterrupt), errors.Is(runError, promptui.ErrEOF), errors.Is(runError, promptui.ErrAbort):
		return "", false, nil
	default:
		return "", false, fmt.Errorf(promptFailureTemplateConstant, runError)
	}
}

// StaticTextPrompter answers every prompt with a preset value.
// It lets values supplied through flags travel the same validation path as typed ones.
type StaticTextPrompter struct {
	Value string
}

// PromptForText returns the preset value as provided input.
func (prompter StaticTextPrompter) PromptForText(executionContext context.Context, request forceide.PromptRequest) (string, bool, error) {
	return prompter.Value, true, nil
}

package forceide

import "context"

// Credentials identify the ISV org session used to bootstrap a debugger project.
type Credentials struct {
	LoginURL  string
	SessionID string
}

// GatherResult is the outcome of a single gathering attempt.
// It is implemented only by CancelResponse and ContinueResponse.
type GatherResult interface {
	gatherResult()
}

// CancelResponse reports that the operator dismissed the prompt or supplied unusable input.
type CancelResponse struct{}

func (CancelResponse) gatherResult() {}

// ContinueResponse carries validated credentials.
type ContinueResponse struct {
	Data Credentials
}

func (ContinueResponse) gatherResult() {}

// TextPrompter asks the operator for a single line of text.
// A false second return value means the operator dismissed the prompt.
type TextPrompter interface {
	PromptForText(executionContext context.Context, request PromptRequest) (string, bool, error)
}

// PromptRequest describes the text shown alongside a prompt.
type PromptRequest struct {
	Label       string
	Placeholder string
}

// ErrorNotifier surfaces a user-visible error message.
type ErrorNotifier interface {
	NotifyError(message string)
}

package forceide

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/isvdebug/internal/localization"
)

const (
	promptFailureErrorTemplateConstant   = "forceide URI prompt failed: %w"
	prompterNotConfiguredMessageConstant = "forceide gatherer prompter not configured"
	notifierNotConfiguredMessageConstant = "forceide gatherer notifier not configured"
	gatherCancelledLogMessageConstant    = "forceide URI gathering cancelled"
	gatherRejectedLogMessageConstant     = "forceide URI rejected"
	gatherAcceptedLogMessageConstant     = "forceide URI accepted"
	logFieldReasonConstant               = "reason"
	logFieldLoginURLConstant             = "login_url"
	cancelReasonDismissedConstant        = "dismissed"
	cancelReasonEmptyConstant            = "empty"
)

var (
	// ErrPrompterNotConfigured indicates the gatherer was constructed without a prompter.
	ErrPrompterNotConfigured = errors.New(prompterNotConfiguredMessageConstant)
	// ErrNotifierNotConfigured indicates the gatherer was constructed without a notifier.
	ErrNotifierNotConfigured = errors.New(notifierNotConfiguredMessageConstant)
)

// Gatherer obtains credentials from a single operator-supplied forceide:// URI.
type Gatherer struct {
	prompter  TextPrompter
	notifier  ErrorNotifier
	localizer localization.Localizer
	logger    *zap.Logger
}

// NewGatherer constructs a Gatherer. A nil localizer defaults to English and a nil logger discards output.
func NewGatherer(prompter TextPrompter, notifier ErrorNotifier, localizer localization.Localizer, logger *zap.Logger) (*Gatherer, error) {
	if prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	if notifier == nil {
		return nil, ErrNotifierNotConfigured
	}
	if localizer == nil {
		localizer = localization.NewEnglishLocalizer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gatherer{prompter: prompter, notifier: notifier, localizer: localizer, logger: logger}, nil
}

// Gather prompts exactly once and resolves the response.
// The returned error is non-nil only when the prompter itself fails.
func (gatherer *Gatherer) Gather(executionContext context.Context) (GatherResult, error) {
	promptRequest := PromptRequest{
		Label:       gatherer.localizer.Localize(localization.KeyForceIDEURIPrompt),
		Placeholder: gatherer.localizer.Localize(localization.KeyForceIDEURIPlaceholder),
	}

	rawURI, provided, promptError := gatherer.prompter.PromptForText(executionContext, promptRequest)
	if promptError != nil {
		return CancelResponse{}, fmt.Errorf(promptFailureErrorTemplateConstant, promptError)
	}
	if !provided {
		gatherer.logger.Debug(gatherCancelledLogMessageConstant, zap.String(logFieldReasonConstant, cancelReasonDismissedConstant))
		return CancelResponse{}, nil
	}
	if len(rawURI) == 0 {
		gatherer.logger.Debug(gatherCancelledLogMessageConstant, zap.String(logFieldReasonConstant, cancelReasonEmptyConstant))
		return CancelResponse{}, nil
	}

	credentials, parseError := Parse(rawURI)
	if parseError != nil {
		gatherer.logger.Info(gatherRejectedLogMessageConstant, zap.String(logFieldReasonConstant, parseError.Error()))
		gatherer.notifier.NotifyError(RejectionMessage(gatherer.localizer, parseError))
		return CancelResponse{}, nil
	}

	gatherer.logger.Debug(gatherAcceptedLogMessageConstant, zap.String(logFieldLoginURLConstant, credentials.LoginURL))
	return ContinueResponse{Data: credentials}, nil
}

// RejectionMessage returns the operator-facing message for a Parse error.
// Anything other than a missing url is reported as a missing sessionId.
func RejectionMessage(localizer localization.Localizer, parseError error) string {
	var missingLoginURLError MissingLoginURLError
	if errors.As(parseError, &missingLoginURLError) {
		return localizer.Localize(localization.KeyForceIDEURIMissingLoginURL)
	}
	return localizer.Localize(localization.KeyForceIDEURIMissingSessionID)
}

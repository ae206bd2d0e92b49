package forceide_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/isvdebug/internal/forceide"
	"github.com/temirov/isvdebug/internal/localization"
)

const (
	testLoginURLConstant  = "a.b.c"
	testSessionIDConstant = "0x123"
)

type scriptedPromptResponse struct {
	value    string
	provided bool
	err      error
}

type scriptedTextPrompter struct {
	responses        []scriptedPromptResponse
	recordedRequests []forceide.PromptRequest
}

func (prompter *scriptedTextPrompter) PromptForText(executionContext context.Context, request forceide.PromptRequest) (string, bool, error) {
	callIndex := len(prompter.recordedRequests)
	prompter.recordedRequests = append(prompter.recordedRequests, request)
	if callIndex >= len(prompter.responses) {
		return "", false, nil
	}
	response := prompter.responses[callIndex]
	return response.value, response.provided, response.err
}

type recordingErrorNotifier struct {
	messages []string
}

func (notifier *recordingErrorNotifier) NotifyError(message string) {
	notifier.messages = append(notifier.messages, message)
}

func TestNewGathererValidation(testInstance *testing.T) {
	testInstance.Run("nil_prompter", func(testInstance *testing.T) {
		gatherer, creationError := forceide.NewGatherer(nil, &recordingErrorNotifier{}, nil, nil)
		require.ErrorIs(testInstance, creationError, forceide.ErrPrompterNotConfigured)
		require.Nil(testInstance, gatherer)
	})
	testInstance.Run("nil_notifier", func(testInstance *testing.T) {
		gatherer, creationError := forceide.NewGatherer(&scriptedTextPrompter{}, nil, nil, nil)
		require.ErrorIs(testInstance, creationError, forceide.ErrNotifierNotConfigured)
		require.Nil(testInstance, gatherer)
	})
}

func TestGathererGather(testInstance *testing.T) {
	localizer := localization.NewEnglishLocalizer()
	missingSessionIDMessage := localizer.Localize(localization.KeyForceIDEURIMissingSessionID)
	missingLoginURLMessage := localizer.Localize(localization.KeyForceIDEURIMissingLoginURL)

	testCases := []struct {
		name                string
		response            scriptedPromptResponse
		expectContinue      bool
		expectedCredentials forceide.Credentials
		expectedMessages    []string
	}{
		{
			name:     "dismissed_prompt_cancels",
			response: scriptedPromptResponse{provided: false},
		},
		{
			name:     "empty_input_cancels",
			response: scriptedPromptResponse{value: "", provided: true},
		},
		{
			name:           "complete_uri_continues",
			response:       scriptedPromptResponse{value: "forceide://abc?url=" + testLoginURLConstant + "&sessionId=" + testSessionIDConstant, provided: true},
			expectContinue: true,
			expectedCredentials: forceide.Credentials{
				LoginURL:  testLoginURLConstant,
				SessionID: testSessionIDConstant,
			},
		},
		{
			name:             "missing_session_id_notifies",
			response:         scriptedPromptResponse{value: "forceide://abc?url=" + testLoginURLConstant, provided: true},
			expectedMessages: []string{missingSessionIDMessage},
		},
		{
			name:             "missing_login_url_notifies",
			response:         scriptedPromptResponse{value: "forceide://abc?sessionId=" + testSessionIDConstant, provided: true},
			expectedMessages: []string{missingLoginURLMessage},
		},
		{
			name:             "missing_both_reports_session_id_first",
			response:         scriptedPromptResponse{value: "forceide://abc", provided: true},
			expectedMessages: []string{missingSessionIDMessage},
		},
		{
			name:             "malformed_uri_reports_session_id",
			response:         scriptedPromptResponse{value: "forceide://abc?url=a.b.c&sessionId=%zz", provided: true},
			expectedMessages: []string{missingSessionIDMessage},
		},
		{
			name:           "undecodable_extra_pair_still_continues",
			response:       scriptedPromptResponse{value: "forceide://abc?url=" + testLoginURLConstant + "&sessionId=" + testSessionIDConstant + "&extra=a;b", provided: true},
			expectContinue: true,
			expectedCredentials: forceide.Credentials{
				LoginURL:  testLoginURLConstant,
				SessionID: testSessionIDConstant,
			},
		},
		{
			name:           "encoded_values_are_decoded_once",
			response:       scriptedPromptResponse{value: "forceide://abc?url=https%3A%2F%2Fna1.salesforce.com&sessionId=00D%21AQ", provided: true},
			expectContinue: true,
			expectedCredentials: forceide.Credentials{
				LoginURL:  "https://na1.salesforce.com",
				SessionID: "00D!AQ",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			prompter := &scriptedTextPrompter{responses: []scriptedPromptResponse{testCase.response}}
			notifier := &recordingErrorNotifier{}

			gatherer, creationError := forceide.NewGatherer(prompter, notifier, localizer, nil)
			require.NoError(testInstance, creationError)

			result, gatherError := gatherer.Gather(context.Background())
			require.NoError(testInstance, gatherError)
			require.Len(testInstance, prompter.recordedRequests, 1)
			require.Equal(testInstance, testCase.expectedMessages, notifier.messages)

			switch typedResult := result.(type) {
			case forceide.ContinueResponse:
				require.True(testInstance, testCase.expectContinue)
				require.Equal(testInstance, testCase.expectedCredentials, typedResult.Data)
			case forceide.CancelResponse:
				require.False(testInstance, testCase.expectContinue)
			default:
				testInstance.Fatalf("unexpected gather result %T", result)
			}
		})
	}
}

func TestGathererSequentialCallsPromptOncePerCall(testInstance *testing.T) {
	prompter := &scriptedTextPrompter{responses: []scriptedPromptResponse{
		{provided: false},
		{value: "", provided: true},
		{value: "forceide://abc?url=a.b.c&sessionId=0x123", provided: true},
		{value: "forceide://abc?url=a.b.c", provided: true},
		{value: "forceide://abc?sessionId=0x123", provided: true},
	}}
	notifier := &recordingErrorNotifier{}

	gatherer, creationError := forceide.NewGatherer(prompter, notifier, nil, nil)
	require.NoError(testInstance, creationError)

	expectedNotificationCounts := []int{0, 0, 0, 1, 2}
	for callIndex, expectedCount := range expectedNotificationCounts {
		_, gatherError := gatherer.Gather(context.Background())
		require.NoError(testInstance, gatherError)
		require.Len(testInstance, prompter.recordedRequests, callIndex+1)
		require.Len(testInstance, notifier.messages, expectedCount)
	}
	require.NotEqual(testInstance, notifier.messages[0], notifier.messages[1])
}

func TestGathererPromptFailure(testInstance *testing.T) {
	promptFailure := errors.New("terminal closed")
	prompter := &scriptedTextPrompter{responses: []scriptedPromptResponse{{err: promptFailure}}}
	notifier := &recordingErrorNotifier{}

	gatherer, creationError := forceide.NewGatherer(prompter, notifier, nil, nil)
	require.NoError(testInstance, creationError)

	result, gatherError := gatherer.Gather(context.Background())
	require.ErrorIs(testInstance, gatherError, promptFailure)
	require.IsType(testInstance, forceide.CancelResponse{}, result)
	require.Empty(testInstance, notifier.messages)
}

func TestGathererUsesLocalizedPromptText(testInstance *testing.T) {
	prompter := &scriptedTextPrompter{}
	gatherer, creationError := forceide.NewGatherer(prompter, &recordingErrorNotifier{}, nil, nil)
	require.NoError(testInstance, creationError)

	_, gatherError := gatherer.Gather(context.Background())
	require.NoError(testInstance, gatherError)

	localizer := localization.NewEnglishLocalizer()
	require.Equal(testInstance, forceide.PromptRequest{
		Label:       localizer.Localize(localization.KeyForceIDEURIPrompt),
		Placeholder: localizer.Localize(localization.KeyForceIDEURIPlaceholder),
	}, prompter.recordedRequests[0])
}

package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/isvdebug/internal/forceide"
)

const (
	readerPromptTemplateConstant      = "%s: "
	readerPromptErrorTemplateConstant = "unable to read response: %w"
	lineTerminatorsConstant           = "\r\n"
)

// ReaderTextPrompter reads prompt responses line by line from an io.Reader.
type ReaderTextPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewReaderTextPrompter constructs a prompter from the provided reader and writer.
func NewReaderTextPrompter(input io.Reader, output io.Writer) *ReaderTextPrompter {
	return &ReaderTextPrompter{reader: bufio.NewReader(input), writer: output}
}

// PromptForText writes the label and reads one line. End of input with nothing read counts as dismissed.
func (prompter *ReaderTextPrompter) PromptForText(executionContext context.Context, request forceide.PromptRequest) (string, bool, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", false, contextError
	}

	if prompter.writer != nil {
		if _, writeError := fmt.Fprintf(prompter.writer, readerPromptTemplateConstant, request.Label); writeError != nil {
			return "", false, writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", false, fmt.Errorf(readerPromptErrorTemplateConstant, readError)
	}
	if errors.Is(readError, io.EOF) && len(response) == 0 {
		return "", false, nil
	}

	return strings.TrimRight(response, lineTerminatorsConstant), true, nil
}

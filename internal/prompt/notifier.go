package prompt

import (
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

const notificationLogMessageConstant = "operator notified"

// ConsoleErrorNotifier prints operator-facing errors in red.
type ConsoleErrorNotifier struct {
	writer     io.Writer
	logger     *zap.Logger
	errorColor *color.Color
}

// NewConsoleErrorNotifier constructs a notifier writing to writer.
// Color is applied only when writer is a terminal.
func NewConsoleErrorNotifier(writer io.Writer, logger *zap.Logger) *ConsoleErrorNotifier {
	if writer == nil {
		writer = os.Stderr
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if outputFile, isFile := writer.(*os.File); !isFile || !IsTerminal(outputFile) {
		errorColor.DisableColor()
	}
	return &ConsoleErrorNotifier{writer: writer, logger: logger, errorColor: errorColor}
}

// NotifyError writes message on its own line and records it in the diagnostic log.
func (notifier *ConsoleErrorNotifier) NotifyError(message string) {
	notifier.logger.Warn(notificationLogMessageConstant, zap.String("message", message))
	_, _ = notifier.errorColor.Fprintln(notifier.writer, message)
}

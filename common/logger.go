package common

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(NewLogger(os.Stderr, log.InfoLevel))
}

// NewLogger creates a structured logger with the shared engine prefix and timestamp format.
//
// Parameters:
//   - w: destination for log output
//   - level: minimum level that is written
//
// Returns:
//   - *log.Logger: the configured logger
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "lumen",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// Logger returns the process-wide logger.
func Logger() *log.Logger {
	return logger.Load()
}

// SetLogger replaces the process-wide logger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

// SetLogLevel parses a level name ("debug", "info", "warn", "error") and applies it to the current logger.
//
// Parameters:
//   - level: the level name
//
// Returns:
//   - error: error if the name is not a valid level
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

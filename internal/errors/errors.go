package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/quitnow/internal/logger"
)

var (
	// ErrCorruptRecord marks a persisted record that exists but cannot be decoded
	ErrCorruptRecord = errors.New("corrupt record")
	// ErrCapabilityUnavailable marks a platform feature (tray notifications) that is not present
	ErrCapabilityUnavailable = errors.New("platform capability unavailable")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Corrupt wraps a decode failure for the named record key.
func Corrupt(key string, err error) error {
	return fmt.Errorf("%w %q: %v", ErrCorruptRecord, key, err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

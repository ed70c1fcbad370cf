package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/daytrack/internal/board"
	"github.com/josephgoksu/daytrack/store"
	"github.com/josephgoksu/daytrack/types"
	"github.com/spf13/viper"
)

var (
	// ErrInvalidID is returned when a task id argument is not a number.
	ErrInvalidID = errors.New("invalid task id")
	// ErrIDRequired is returned when no id is given and no prompt can be shown.
	ErrIDRequired = errors.New("task id required")
	// ErrNoTasksFound is returned when an interactive selection has nothing to offer.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
)

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

// errorCode maps an error chain onto a stable code for --json output.
func errorCode(err error) string {
	switch {
	case errors.Is(err, board.ErrBlankText),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrIDRequired):
		return types.CodeInvalidInput
	case errors.Is(err, board.ErrTaskNotFound),
		errors.Is(err, ErrNoTasksFound):
		return types.CodeNotFound
	case errors.Is(err, board.ErrTaskCompleted):
		return types.CodeConflict
	case errors.Is(err, store.ErrChecksumMismatch),
		errors.Is(err, store.ErrUnsupportedFormat),
		errors.Is(err, store.ErrUnsupportedBackend):
		return types.CodeStorage
	default:
		return types.CodeInternal
	}
}

// userMessage is the one-line explanation shown without --verbose.
func userMessage(err error) string {
	switch {
	case errors.Is(err, board.ErrBlankText):
		return "Task text cannot be empty."
	case errors.Is(err, ErrInvalidID):
		return "Task ids are numbers; see `daytrack list` for them."
	case errors.Is(err, ErrIDRequired):
		return "Pass a task id, or run in a terminal to pick one."
	case errors.Is(err, board.ErrTaskNotFound):
		return "No task with that id. It may be older than the retention window."
	case errors.Is(err, board.ErrTaskCompleted):
		return "Completed tasks can't be edited. Mark it as not done first."
	case errors.Is(err, store.ErrChecksumMismatch):
		return "The task file failed its integrity check. Set data.verifyChecksum=false to load it anyway."
	case errors.Is(err, store.ErrUnsupportedFormat), errors.Is(err, store.ErrUnsupportedBackend):
		return "The storage settings are not supported. Check data.format and data.backend."
	default:
		return "Error: " + err.Error()
	}
}

// reportError prints err as JSON with --json, or as a friendly message on stderr.
func reportError(w io.Writer, err error) {
	if isJSON() {
		resp := types.NewErrorResponse(errorCode(err), userMessage(err), map[string]interface{}{
			"error": err.Error(),
		})
		if jsonErr := printJSON(w, resp); jsonErr == nil {
			return
		}
	}
	PrintError(userMessage(err), err)
}

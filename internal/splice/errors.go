package splice

import (
	"errors"
	"fmt"

	"github.com/local/pdfsplice/internal/pagespec"
)

const (
	ExitSuccess         = 0
	ExitUsage           = 1
	ExitPageOutOfRange  = 30
	ExitMissingInput    = 40
	ExitBadToken        = 50
	ExitSpreadPageCount = 60
	ExitBackendFailure  = 70
)

// ErrMissingInput is returned when a source reference names no existing document.
var ErrMissingInput = errors.New("input file does not exist")

// UsageError reports a malformed command line or a help request. Message is
// empty for a plain help request.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return "usage requested"
	}
	return e.Message
}

func usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

func missingInput(ref string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, ref)
}

// ExitCode maps an error returned by ParseInvocation or Runner.Run to the
// process exit status.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsage
	case errors.Is(err, ErrMissingInput):
		return ExitMissingInput
	case errors.Is(err, pagespec.ErrPageOutOfRange):
		return ExitPageOutOfRange
	case errors.Is(err, pagespec.ErrUnexpectedToken), errors.Is(err, pagespec.ErrInvalidRotation):
		return ExitBadToken
	case errors.Is(err, pagespec.ErrInvalidSpreadPageCount):
		return ExitSpreadPageCount
	}
	// backend, sniffing, verification and transfer failures
	return ExitBackendFailure
}

// Outcome labels a run for metrics.
func Outcome(err error) string {
	switch ExitCode(err) {
	case ExitSuccess:
		return "success"
	case ExitUsage:
		return "usage"
	case ExitBackendFailure:
		return "backend_error"
	}
	return "invalid_input"
}

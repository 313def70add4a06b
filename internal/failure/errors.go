package failure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrArgumentCount     = errors.New("wrong number of arguments")
	ErrInvalidInput      = errors.New("input directory not found")
	ErrInvalidSize       = errors.New("invalid size argument")
	ErrDirectoryCreation = errors.New("cannot create output directory")
	ErrDecode            = errors.New("decode failure")
	ErrResize            = errors.New("resize failure")
	ErrEncodeWrite       = errors.New("encode or write failure")
	ErrLocked            = errors.New("output directory locked")
)

// ExitFailure is the process status for every aborted run.
const ExitFailure = -1

// Error ties an underlying error to a taxonomy marker, the stage that raised
// it and the subject the user should see.
type Error struct {
	Marker  error
	Stage   string
	Subject string
	Err     error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 4)
	if stage := strings.TrimSpace(e.Stage); stage != "" {
		parts = append(parts, stage)
	}
	if e.Marker != nil {
		parts = append(parts, e.Marker.Error())
	}
	if subject := strings.TrimSpace(e.Subject); subject != "" {
		parts = append(parts, fmt.Sprintf("%q", subject))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Marker != nil {
		errs = append(errs, e.Marker)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Wrap tags err with marker. The marker should be one of the sentinels above;
// a nil marker falls back to ErrEncodeWrite since unclassified I/O is fatal.
func Wrap(marker error, stage, subject string, err error) error {
	if marker == nil {
		marker = ErrEncodeWrite
	}
	return &Error{Marker: marker, Stage: stage, Subject: subject, Err: err}
}

// SubjectOf returns the subject recorded by Wrap, or "" when err carries none.
func SubjectOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Subject
	}
	return ""
}

// StageOf returns the stage recorded by Wrap, or "".
func StageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Stage
	}
	return ""
}

// IsArgument reports whether err was raised while validating arguments.
func IsArgument(err error) bool {
	return errors.Is(err, ErrArgumentCount) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidSize)
}

// ExitCode maps a run result to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return ExitFailure
}

package extractors

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by an extractor wraps exactly one of these,
// so callers can classify with errors.Is.
var (
	ErrMalformedLog    = errors.New("malformed log")
	ErrMissingRounds   = errors.New("missing rounds")
	ErrHeaderParse     = errors.New("header parse error")
	ErrTableParse      = errors.New("table parse error")
	ErrRosterParse     = errors.New("roster parse error")
	ErrRoleResolution  = errors.New("role resolution error")
	ErrCardDecode      = errors.New("card decode error")
	ErrHeroLineMissing = errors.New("hero line missing")
)

// LineError ties a failure to the line of the hand that caused it.
// Offset is the zero-based index into the hand's line array, or -1 when the
// failure is not tied to a single line.
type LineError struct {
	Kind   error
	Offset int
	Line   string
	Reason string
}

func (e *LineError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: line %d %q: %s", e.Kind, e.Offset, e.Line, e.Reason)
}

// Unwrap returns the error kind.
func (e *LineError) Unwrap() error {
	return e.Kind
}

func lineErr(kind error, offset int, line, format string, args ...interface{}) *LineError {
	return &LineError{
		Kind:   kind,
		Offset: offset,
		Line:   line,
		Reason: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the error kind wrapped by err, or nil if err carries none.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrMalformedLog, ErrMissingRounds, ErrHeaderParse, ErrTableParse,
		ErrRosterParse, ErrRoleResolution, ErrCardDecode, ErrHeroLineMissing,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

package playback

import "fmt"

// ErrorKind classifies asynchronous player errors.
type ErrorKind int

const (
	// ErrorKindSource covers unrecoverable conditions reported by a
	// media source or renderer.
	ErrorKindSource ErrorKind = iota

	// ErrorKindTimeout covers a command delivery that exceeded its
	// bound during a resource hand-off.
	ErrorKindTimeout
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindSource:
		return "Source"
	case ErrorKindTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// Error is the unified playback error recorded into PlayerState. Both
// kinds force the state to Idle; the error clears only on the next
// successful prepare.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("playback: %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewSourceError wraps an unrecoverable collaborator error.
func NewSourceError(err error) *Error {
	return &Error{Kind: ErrorKindSource, Err: err}
}

// NewTimeoutError records a hand-off that could not be confirmed
// within its bound.
func NewTimeoutError(op string, err error) *Error {
	return &Error{Kind: ErrorKindTimeout, Err: fmt.Errorf("%s: %w", op, err)}
}

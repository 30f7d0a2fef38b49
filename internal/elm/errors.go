package elm

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every *TransportError via errors.Is.
	ErrTransport = errors.New("transport error")

	ErrEncoding           = errors.New("response is not valid text")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrInvalidCommandSpec = errors.New("invalid command spec")

	// ErrNoData is returned when the adapter answers with one of its own
	// error replies instead of a payload.
	ErrNoData = fmt.Errorf("%w: adapter returned no data", ErrMalformedResponse)

	ErrSessionFaulted  = errors.New("session faulted, reopen the connection")
	ErrSessionNotReady = errors.New("session not ready")
	ErrSessionClosed   = errors.New("session closed")
)

// TransportError reports a failure at the byte-stream boundary.
type TransportError struct {
	Op  string // open, write, flush, read or close
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func transportErr(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

package elm

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultReadCap is the most bytes read for a single reply.
const DefaultReadCap = 100

// Conn is an open byte stream to the adapter. Read returns whatever arrived
// within the stream's read window, possibly nothing.
type Conn interface {
	Write(p []byte) (int, error)
	Flush() error
	Read(max int) ([]byte, error)
	Close() error
}

type State int

const (
	StateIdle State = iota
	StateEchoDisabled
	StateReady
	StateFaulted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEchoDisabled:
		return "echo-disabled"
	case StateReady:
		return "ready"
	case StateFaulted:
		return "faulted"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Option func(*Session)

// WithReadCap sets the maximum reply size. Non-positive values are ignored.
func WithReadCap(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.readCap = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session runs commands over a single connection it owns. Requests and
// replies strictly alternate, so a Session must not be used from more than
// one goroutine at a time.
type Session struct {
	conn    Conn
	readCap int
	log     *zap.Logger
	state   State
}

// Initialize turns echo off on a freshly opened connection. The adapter's
// reply is discarded without checking it.
func Initialize(conn Conn, opts ...Option) (*Session, error) {
	s := &Session{
		conn:    conn,
		readCap: DefaultReadCap,
		log:     zap.NewNop(),
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.exchange(EchoOff); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	s.state = StateEchoDisabled

	s.log.Info("ELM327 session ready", zap.Int("read_cap", s.readCap))
	s.state = StateReady
	return s, nil
}

func (s *Session) State() State { return s.state }

// Run sends cmd and decodes its reply. Transport failures leave the
// session faulted; decode failures do not.
func (s *Session) Run(cmd Command) (any, error) {
	switch s.state {
	case StateReady:
	case StateFaulted:
		return nil, ErrSessionFaulted
	case StateClosed:
		return nil, ErrSessionClosed
	default:
		return nil, fmt.Errorf("%w: %s", ErrSessionNotReady, s.state)
	}

	if cmd.decoder == nil {
		return nil, fmt.Errorf("%w: command not built with NewCommand", ErrInvalidCommandSpec)
	}

	raw, err := s.exchange(cmd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.label, err)
	}

	if cmd.expectsPayload() {
		if err := checkErrorReply(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", cmd.label, err)
		}
	}

	payload, err := Trim(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.label, err)
	}
	s.log.Debug("Trimmed response", zap.String("command", cmd.label), zap.String("payload", payload))

	v, err := cmd.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.label, err)
	}
	return v, nil
}

// exchange writes the request and reads one reply.
func (s *Session) exchange(cmd Command) ([]byte, error) {
	s.log.Debug("Writing command", zap.String("command", cmd.label), zap.String("wire", fmt.Sprintf("%q", cmd.wire)))

	if _, err := s.conn.Write(cmd.wire); err != nil {
		return nil, s.fault("write", err)
	}
	if err := s.conn.Flush(); err != nil {
		return nil, s.fault("flush", err)
	}

	raw, err := s.conn.Read(s.readCap)
	if err != nil {
		return nil, s.fault("read", err)
	}
	if len(raw) > s.readCap {
		raw = raw[:s.readCap]
	}

	s.log.Debug("Raw response", zap.String("command", cmd.label), zap.String("raw", fmt.Sprintf("%q", raw)))
	return raw, nil
}

func (s *Session) fault(op string, err error) error {
	s.state = StateFaulted
	s.log.Error("Transport failure, session faulted", zap.String("op", op), zap.Error(err))
	return transportErr(op, err)
}

// Close releases the connection. The session cannot be used afterwards.
func (s *Session) Close() error {
	s.state = StateClosed
	if err := s.conn.Close(); err != nil {
		return transportErr("close", err)
	}
	return nil
}

package elm

import (
	"bytes"
	"fmt"
)

// Terminator ends every request sent to the adapter.
const Terminator = '\r'

// Decoder turns a trimmed reply into a value.
type Decoder interface {
	Decode(payload string) (any, error)
}

// DecoderFunc adapts a plain function to Decoder.
type DecoderFunc func(payload string) (any, error)

func (f DecoderFunc) Decode(payload string) (any, error) { return f(payload) }

// Command describes one request the adapter understands. The zero value is
// not usable; build commands with NewCommand.
type Command struct {
	label   string
	wire    []byte
	decoder Decoder
}

// NewCommand validates and builds a command. wire is copied.
func NewCommand(label string, wire []byte, dec Decoder) (Command, error) {
	switch {
	case label == "":
		return Command{}, fmt.Errorf("%w: empty label", ErrInvalidCommandSpec)
	case len(wire) == 0:
		return Command{}, fmt.Errorf("%w: %s: empty wire bytes", ErrInvalidCommandSpec, label)
	case wire[len(wire)-1] != Terminator:
		return Command{}, fmt.Errorf("%w: %s: wire bytes %q not terminated by \\r", ErrInvalidCommandSpec, label, wire)
	case dec == nil:
		return Command{}, fmt.Errorf("%w: %s: nil decoder", ErrInvalidCommandSpec, label)
	}

	return Command{
		label:   label,
		wire:    bytes.Clone(wire),
		decoder: dec,
	}, nil
}

func mustCommand(label string, wire string, dec Decoder) Command {
	cmd, err := NewCommand(label, []byte(wire), dec)
	if err != nil {
		panic(err)
	}
	return cmd
}

func (c Command) Label() string { return c.label }

// Wire returns a copy of the bytes written for this command.
func (c Command) Wire() []byte { return bytes.Clone(c.wire) }

func (c Command) Decode(payload string) (any, error) {
	return c.decoder.Decode(payload)
}

// expectsPayload reports whether the reply carries data worth checking for
// adapter error replies.
func (c Command) expectsPayload() bool {
	_, discard := c.decoder.(discardDecoder)
	return !discard
}

func (c Command) String() string {
	return fmt.Sprintf("%s (%q)", c.label, c.wire)
}

// Built-in commands.
var (
	EchoOff   = mustCommand("Echo off", "AT E0\r", discardDecoder{})
	EngineRPM = mustCommand("RPM", "010C\r", DecoderFunc(DecodeRPM))
)

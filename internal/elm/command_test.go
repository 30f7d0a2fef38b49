package elm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand_Validation(t *testing.T) {
	dec := DecoderFunc(DecodeRPM)

	tests := []struct {
		name  string
		label string
		wire  []byte
		dec   Decoder
	}{
		{name: "empty label", label: "", wire: []byte("010C\r"), dec: dec},
		{name: "empty wire", label: "RPM", wire: nil, dec: dec},
		{name: "missing terminator", label: "RPM", wire: []byte("010C"), dec: dec},
		{name: "nil decoder", label: "RPM", wire: []byte("010C\r"), dec: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCommand(tt.label, tt.wire, tt.dec)
			assert.ErrorIs(t, err, ErrInvalidCommandSpec)
		})
	}
}

func TestNewCommand_CopiesWire(t *testing.T) {
	wire := []byte("0105\r")
	cmd, err := NewCommand("Coolant", wire, DecoderFunc(DecodeRPM))
	require.NoError(t, err)

	wire[0] = 'X'
	assert.Equal(t, []byte("0105\r"), cmd.Wire())

	out := cmd.Wire()
	out[0] = 'Y'
	assert.Equal(t, []byte("0105\r"), cmd.Wire())
}

func TestBuiltinCommands(t *testing.T) {
	assert.Equal(t, "Echo off", EchoOff.Label())
	assert.Equal(t, []byte("AT E0\r"), EchoOff.Wire())
	assert.False(t, EchoOff.expectsPayload())

	assert.Equal(t, "RPM", EngineRPM.Label())
	assert.Equal(t, []byte("010C\r"), EngineRPM.Wire())
	assert.True(t, EngineRPM.expectsPayload())
}

func TestTable(t *testing.T) {
	tbl := DefaultTable()
	assert.Equal(t, 2, tbl.Len())

	cmd, ok := tbl.Lookup("RPM")
	require.True(t, ok)
	assert.Equal(t, EngineRPM.Wire(), cmd.Wire())

	_, ok = tbl.Lookup("Speed")
	assert.False(t, ok)

	cmds := tbl.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "Echo off", cmds[0].Label())
	assert.Equal(t, "RPM", cmds[1].Label())
}

func TestNewTable_Rejects(t *testing.T) {
	_, err := NewTable(EngineRPM, EngineRPM)
	assert.ErrorIs(t, err, ErrInvalidCommandSpec)

	_, err = NewTable(Command{})
	assert.ErrorIs(t, err, ErrInvalidCommandSpec)
}

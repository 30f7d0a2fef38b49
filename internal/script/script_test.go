package script

import (
	"testing"

	"github.com/chuanjin/elmlink/internal/elm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Compile(t *testing.T) {
	e := NewEngine()

	dec, err := e.Compile(`package decoder

import "strings"

func Decode(payload string) (interface{}, error) {
	return strings.ToLower(payload), nil
}`)
	require.NoError(t, err)

	got, err := dec.Decode("1A2C")
	require.NoError(t, err)
	assert.Equal(t, "1a2c", got)
}

func TestEngine_CompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: "package decoder\nfunc Decode( {"},
		{name: "missing Decode", src: "package decoder\nfunc Parse(s string) (interface{}, error) { return s, nil }"},
		{name: "wrong signature", src: "package decoder\nfunc Decode(s string) string { return s }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine().Compile(tt.src)
			assert.ErrorIs(t, err, ErrCompile)
		})
	}
}

func TestScriptDecoder_Errors(t *testing.T) {
	dec, err := NewEngine().Compile(`package decoder

import "errors"

func Decode(payload string) (interface{}, error) {
	if payload == "" {
		return nil, errors.New("empty")
	}
	var m map[string]int
	m[payload] = 1
	return nil, nil
}`)
	require.NoError(t, err)

	_, err = dec.Decode("")
	assert.ErrorIs(t, err, elm.ErrMalformedResponse)

	_, err = dec.Decode("boom")
	assert.ErrorIs(t, err, elm.ErrMalformedResponse, "panics are turned into errors")
}

func TestLoader_Load(t *testing.T) {
	cmds, err := NewLoader(NewEngine()).Load("testdata/scripts")
	require.NoError(t, err)
	require.Len(t, cmds, 3)

	assert.Equal(t, "Coolant", cmds[0].Label())
	assert.Equal(t, []byte("0105\r"), cmds[0].Wire())
	assert.Equal(t, "Speed", cmds[1].Label())
	assert.Equal(t, []byte("010D\r"), cmds[1].Wire())
	assert.Equal(t, "Throttle", cmds[2].Label())
	assert.Equal(t, []byte("0111\r"), cmds[2].Wire())

	tests := []struct {
		cmd     elm.Command
		payload string
		want    any
	}{
		{cmd: cmds[0], payload: "7B", want: 83},
		{cmd: cmds[0], payload: "00", want: -40},
		{cmd: cmds[1], payload: "64", want: 100},
		{cmd: cmds[2], payload: "7F", want: 50},
		{cmd: cmds[2], payload: "00", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Label()+"/"+tt.payload, func(t *testing.T) {
			got, err := tt.cmd.Decode(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = cmds[1].Decode("ZZ")
	assert.ErrorIs(t, err, elm.ErrMalformedResponse)

	// Scripted commands merge with the built-ins into one table.
	tbl, err := elm.NewTable(append(cmds, elm.EchoOff, elm.EngineRPM)...)
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.Len())
}

func TestLoader_LoadErrors(t *testing.T) {
	l := NewLoader(NewEngine())

	_, err := l.Load("testdata/broken")
	assert.ErrorIs(t, err, ErrCompile)

	_, err = l.Load("testdata/does-not-exist")
	assert.Error(t, err)
}

func TestLoader_ParseHeaders(t *testing.T) {
	l := NewLoader(NewEngine())
	body := "package decoder\nfunc Decode(s string) (interface{}, error) { return s, nil }\n"

	_, err := l.Parse("// Request: 0105\n" + body)
	assert.ErrorIs(t, err, elm.ErrInvalidCommandSpec)

	_, err = l.Parse("// Command: Coolant\n" + body)
	assert.ErrorIs(t, err, elm.ErrInvalidCommandSpec)

	cmd, err := l.Parse("// Command:  Fuel level \n// Request: 012F\n" + body)
	require.NoError(t, err)
	assert.Equal(t, "Fuel level", cmd.Label())
	assert.Equal(t, []byte("012F\r"), cmd.Wire())
}

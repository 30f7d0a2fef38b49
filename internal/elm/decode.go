package elm

import (
	"fmt"
	"strconv"
)

// discardDecoder is used for commands sent only for their side effect.
type discardDecoder struct{}

func (discardDecoder) Decode(string) (any, error) { return nil, nil }

// DecodeRPM decodes the two data bytes of a mode 01 PID 0C reply.
// Engine speed is (256*X + Y) / 4, rounded up.
func DecodeRPM(payload string) (any, error) {
	if len(payload) < 2 {
		return nil, fmt.Errorf("%w: rpm payload %q shorter than 2 characters", ErrMalformedResponse, payload)
	}

	x, err := hexByte(payload[:2])
	if err != nil {
		return nil, err
	}
	y, err := hexByte(payload[2:])
	if err != nil {
		return nil, err
	}

	raw := 256*x + y
	return (raw + 3) / 4, nil
}

// hexByte parses one or two hex characters.
func hexByte(s string) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("%w: %q is not a single hex byte", ErrMalformedResponse, s)
	}
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not hex", ErrMalformedResponse, s)
	}
	return int(v), nil
}

// Command: Speed
// Request: 010D
package decoder

import (
	"fmt"
	"strconv"
)

// Vehicle speed in km/h.
func Decode(payload string) (interface{}, error) {
	if len(payload) != 2 {
		return nil, fmt.Errorf("speed payload %q is not one byte", payload)
	}
	x, err := strconv.ParseUint(payload, 16, 8)
	if err != nil {
		return nil, err
	}
	return int(x), nil
}

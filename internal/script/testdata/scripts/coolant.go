// Command: Coolant
// Request: 0105
package decoder

import (
	"fmt"
	"strconv"
)

// Engine coolant temperature in degrees Celsius, X - 40.
func Decode(payload string) (interface{}, error) {
	if len(payload) != 2 {
		return nil, fmt.Errorf("coolant payload %q is not one byte", payload)
	}
	x, err := strconv.ParseUint(payload, 16, 8)
	if err != nil {
		return nil, err
	}
	return int(x) - 40, nil
}

// Command: Throttle
// Request: 0111
package decoder

import (
	"fmt"
	"math"
	"strconv"
)

// Throttle position in percent, 100X/255 rounded up.
func Decode(payload string) (interface{}, error) {
	if len(payload) != 2 {
		return nil, fmt.Errorf("throttle payload %q is not one byte", payload)
	}
	x, err := strconv.ParseUint(payload, 16, 8)
	if err != nil {
		return nil, err
	}
	return int(math.Ceil(100.0 / 255.0 * float64(x))), nil
}

// Command: Broken
// Request: 0142
package decoder

func Decode(payload string) string {
	return payload
}

package elm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EchoPrefixLen is the length of the echoed mode and PID (two hex pairs)
// that precedes every payload once framing is stripped.
const EchoPrefixLen = 4

var framing = strings.NewReplacer("\n", "", "\r", "", " ", "", ">", "")

// StripFraming removes line breaks, spaces and the prompt anywhere in s.
func StripFraming(s string) string {
	return framing.Replace(s)
}

// Trim reduces a raw reply to its payload: framing characters are removed
// and the echoed prefix is dropped. Replies shorter than the prefix trim to
// the empty string. The prefix is counted in characters, not bytes.
func Trim(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: % X", ErrEncoding, raw)
	}

	s := StripFraming(string(raw))
	for i := 0; i < EchoPrefixLen; i++ {
		if s == "" {
			return "", nil
		}
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s, nil
}

// adapter replies that stand in for a payload, framing already stripped
var errorReplies = []string{
	"NODATA",
	"UNABLETOCONNECT",
	"STOPPED",
	"CANERROR",
	"BUSERROR",
	"BUSBUSY",
	"BUSINIT:...ERROR",
	"DATAERROR",
	"FBERROR",
	"?",
	"ERROR",
}

// checkErrorReply rejects replies the adapter produces instead of data.
func checkErrorReply(raw []byte) error {
	s := StripFraming(string(raw))
	for _, reply := range errorReplies {
		if strings.Contains(s, reply) {
			return fmt.Errorf("%w: %q", ErrNoData, reply)
		}
	}
	return nil
}

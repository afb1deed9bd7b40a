package extractor

import (
	"unicode/utf8"
)

// DecodeText returns data as a string after checking it is valid UTF-8. The
// bytes are kept as they are, including a leading byte-order mark.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidText
	}
	return string(data), nil
}

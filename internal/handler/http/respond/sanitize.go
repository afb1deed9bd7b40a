package respond

import (
	"regexp"
)

var (
	// anthropicKeyPattern must be applied before openaiKeyPattern.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-(?:proj-)?[a-zA-Z0-9_-]{10,}`)
	bearerPattern       = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/=-]+`)
)

// SanitizeError returns err's message with API keys and bearer tokens masked.
// Provider error messages are shown to users, so everything displayed passes
// through here first.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeMessage(err.Error())
}

// SanitizeMessage masks secrets in msg.
func SanitizeMessage(msg string) string {
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}

package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Message length limits
const (
	MaxMessageLength = 5000
	MinMessageLength = 1
)

var (
	scriptTagRegex = regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`)
	onEventRegex   = regexp.MustCompile(`(?i)\s+on\w+\s*=`)
	htmlTagRegex   = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeMessageContent cleans user-written chat content before it is
// persisted. Script tags and inline event handlers are stripped here; entity
// escaping happens at render time so stored content is never double-escaped.
func SanitizeMessageContent(content string) string {
	content = scriptTagRegex.ReplaceAllString(content, "")
	content = onEventRegex.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// ValidateMessageLength reports whether content fits the chat message bounds.
func ValidateMessageLength(content string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	return n >= MinMessageLength && n <= MaxMessageLength
}

// StripHTML removes all HTML tags from a string. Notification messages may
// carry markup; this is used when a plain-text form is needed.
func StripHTML(input string) string {
	return htmlTagRegex.ReplaceAllString(input, "")
}

// TruncateString safely truncates a string to max length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// IsUUID checks if the string is a valid UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMessageContent(t *testing.T) {
	assert.Equal(t, "hello", SanitizeMessageContent("  hello  "))
	assert.Equal(t, "helloworld", SanitizeMessageContent("hello<script>alert(1)</script>world"))
	assert.Equal(t, `<img src="x" "y">`, SanitizeMessageContent(`<img src="x" onerror="y">`))

	// Plain markup-free text is untouched; escaping is the renderer's job.
	assert.Equal(t, `a < b & c > d`, SanitizeMessageContent(`a < b & c > d`))
}

func TestValidateMessageLength(t *testing.T) {
	assert.False(t, ValidateMessageLength(""))
	assert.False(t, ValidateMessageLength("   "))
	assert.True(t, ValidateMessageLength("x"))
	assert.True(t, ValidateMessageLength(strings.Repeat("a", MaxMessageLength)))
	assert.False(t, ValidateMessageLength(strings.Repeat("a", MaxMessageLength+1)))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "friend request", StripHTML(`<a href="/friends/">friend request</a>`))
	assert.Equal(t, "plain", StripHTML("plain"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID(GenerateID()))
	assert.False(t, IsUUID("not-a-uuid"))
}

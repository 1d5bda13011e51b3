package render

import (
	"fmt"
	"html"
	"html/template"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	kb = 1 << 10
	mb = 1 << 20
	gb = 1 << 30
)

var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

// FormatFileSize renders a byte count the way the chat attachment block shows
// it: whole bytes below 1 KB, otherwise two decimals in the largest fitting
// unit up to GB.
func FormatFileSize(size int64) string {
	switch {
	case size < kb:
		return fmt.Sprintf("%d B", size)
	case size < mb:
		return fmt.Sprintf("%.2f KB", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.2f MB", float64(size)/mb)
	default:
		return fmt.Sprintf("%.2f GB", float64(size)/gb)
	}
}

// FileNameFromURL extracts the attachment's display name from its storage URL.
func FileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	name := path.Base(u.Path)
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}

// WrapURLs escapes content and wraps any bare URL in an anchor that asks for
// confirmation before navigating. Text without URLs comes back unchanged
// (apart from HTML escaping).
func WrapURLs(content string) template.HTML {
	escaped := html.EscapeString(content)
	linked := urlRegex.ReplaceAllStringFunc(escaped, func(u string) string {
		return fmt.Sprintf(`<a href="%s" onclick="return confirmVisit('%s')" target="_blank" rel="noopener">%s</a>`, u, u, u)
	})
	return template.HTML(linked)
}

// FormatTimestamp renders a message timestamp as a short clock reading in the
// viewer's timezone.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("3:04 PM")
}

// FormatLastOnline renders a last-seen timestamp in the subject's timezone.
// An empty string means the time is unknown or the subject never set a
// timezone; callers surface that as null rather than guessing a zone.
func FormatLastOnline(t *time.Time, timezone string) string {
	if t == nil || timezone == "" {
		return ""
	}
	at := *t
	if loc, err := time.LoadLocation(timezone); err == nil {
		at = at.In(loc)
	}
	return at.Format("January 02, 2006, 03:04 PM")
}

// NeedsReadMore reports whether a truncated preview actually differs from the
// full body. When truncation was a no-op the read-more affordance is
// suppressed entirely.
func NeedsReadMore(body, preview string) bool {
	return strings.TrimSpace(body) != strings.TrimSpace(preview)
}

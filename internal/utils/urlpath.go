package utils

import (
	"net/url"
	"path"
	"strings"
)

// ExtractMeetingID returns the meeting ID from a tl;dv meeting URL.
// Example: https://tldv.io/app/meetings/abc123/ -> abc123
// Input that is not an http(s) URL is treated as a bare ID.
func ExtractMeetingID(raw string) string {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return raw
	}

	p := strings.TrimRight(parsed.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// IsMeetingURL reports whether s looks like a tl;dv meeting link.
func IsMeetingURL(s string) bool {
	parsed, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if host != "tldv.io" && !strings.HasSuffix(host, ".tldv.io") {
		return false
	}
	return strings.Contains(parsed.Path, "/meetings/") && ExtractMeetingID(s) != "meetings"
}

// SanitizeFilename replaces characters that are invalid in file names on
// common filesystems with '-'.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '-'
		}
		return r
	}, name)
}

package translator

import (
	"strings"
	"unicode/utf8"
)

const translationMarker = `[[["`

// ParseTranslation pulls the first translated segment out of a gtx response
// body. The text between the opening marker and the next double quote is
// returned as-is; escape sequences are not decoded.
func ParseTranslation(body string) (string, error) {
	if start := strings.Index(body, translationMarker); start >= 0 {
		after := body[start+len(translationMarker):]
		if end := strings.IndexByte(after, '"'); end >= 0 {
			translated := after[:end]
			if strings.TrimSpace(translated) == "" {
				return "", ErrEmptyResponse
			}
			return translated, nil
		}
	}
	return "", &ParseError{Excerpt: excerpt(body, parseExcerptLen)}
}

// isRateLimited reports whether the body looks like a block page rather
// than a translation payload.
func isRateLimited(body string) bool {
	return strings.Contains(body, "<html>") || strings.Contains(body, "503") || body == "[]"
}

// excerpt returns at most n bytes of s without splitting a rune.
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicy = newHTMLPolicy()
	textPolicy = bluemonday.StrictPolicy()
)

// newHTMLPolicy builds the allow-list for rich-text fields. Anything not
// named here is removed, and script/style bodies are dropped wholesale.
func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "hr",
		"em", "strong", "i", "b", "u", "s",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"a", "img",
		"table", "thead", "tbody", "tr", "th", "td",
		"blockquote", "pre", "code",
		"div", "span",
	)
	p.AllowAttrs("title", "class", "id").Globally()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("data-language").OnElements("pre", "code")
	p.AllowURLSchemes("http", "https", "mailto", "tel", "callto", "sms", "cid", "xmpp")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	return p
}

// SanitizeHTML cleans rich-text content, keeping allow-listed structure and
// removing everything else. Safe to call on already-clean content.
func SanitizeHTML(input string) string {
	if input == "" {
		return ""
	}
	return htmlPolicy.Sanitize(input)
}

// SanitizeText strips all markup from a plain-text field, keeping inner
// text only. Script and style bodies are dropped, not kept as text.
func SanitizeText(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(textPolicy.Sanitize(input))
}

// SanitizeURL trims a URL string, rejects script-capable schemes outright
// and strips any embedded markup. Unsafe input degrades to "".
func SanitizeURL(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if hasUnsafeScheme(trimmed) {
		return ""
	}
	cleaned := html.UnescapeString(textPolicy.Sanitize(trimmed))
	// A URL never legitimately contains angle brackets; dropping them keeps
	// repeated sanitization stable.
	cleaned = strings.NewReplacer("<", "", ">", "").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	if hasUnsafeScheme(cleaned) {
		return ""
	}
	return cleaned
}

// hasUnsafeScheme matches javascript:, data: and vbscript: prefixes
// case-insensitively, ignoring whitespace and control characters that
// browsers tolerate inside the scheme.
func hasUnsafeScheme(s string) bool {
	var b strings.Builder
	for _, r := range s {
		if r <= ' ' {
			continue
		}
		b.WriteRune(r)
		if b.Len() >= 16 {
			break
		}
	}
	p := strings.ToLower(b.String())
	return strings.HasPrefix(p, "javascript:") ||
		strings.HasPrefix(p, "data:") ||
		strings.HasPrefix(p, "vbscript:")
}

package service

import (
	"regexp"
	"strings"
)

var (
	wholeFenceRE   = regexp.MustCompile("(?is)^```[a-z]*\\s*\\n?(.*?)\\n?```$")
	openParaQuote  = regexp.MustCompile(`(?i)(<p[^>]*>)\s*["']`)
	closeParaQuote = regexp.MustCompile(`(?i)["']\s*(</p>)`)
)

// SanitizeMarkup cleans markup output the model wrapped in a code fence or
// quote characters. Runs to a fixpoint so sanitizing already-sanitized
// output is a no-op.
func SanitizeMarkup(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := sanitizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func sanitizeOnce(s string) string {
	// A fence only counts when it wraps the entire response.
	if m := wholeFenceRE.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	// One layer of matching wrapping quotes.
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	// Models sometimes quote their own HTML paragraphs.
	s = openParaQuote.ReplaceAllString(s, "$1")
	s = closeParaQuote.ReplaceAllString(s, "$1")

	return s
}

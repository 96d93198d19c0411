package service

import (
	"regexp"
	"strings"

	"github.com/minhtran-dev/studynotes-be/types"
)

// Boundary marker lines written by corpus assembly. The two forms are a
// text protocol shared with document ingestion and must stay byte-for-byte
// compatible with what BuildCorpus emits.
var (
	docMarkerRE  = regexp.MustCompile(`(?i)^---\s*Document:\s*(.+?)\s*---$`)
	fileMarkerRE = regexp.MustCompile(`(?i)^File:\s*(.+)$`)
)

const (
	defaultSectionTitle = "Document"
	truncationMarker    = "[truncated]"
)

// BalanceContext re-assembles a multi-document corpus so that every
// detected section gets a fair share of the word budget. Large uploads
// would otherwise drown out small ones in the prompt: a long lecture
// transcript must not crowd out a short slide deck.
//
// When the corpus carries no boundary markers it falls back to plain
// truncation at maxWords.
func BalanceContext(corpus string, maxWords int) string {
	sections, markerFound := splitSections(corpus)
	if !markerFound || len(sections) == 0 {
		return truncateWithMarker(corpus, maxWords)
	}

	base := maxWords / len(sections)
	if base < 1 {
		base = 1
	}
	remainder := maxWords - base*len(sections)
	if remainder < 0 {
		remainder = 0
	}

	blocks := make([]string, 0, len(sections))
	for i, sec := range sections {
		// Rounding leftovers go to the earliest sections, in document order.
		alloc := base
		if i < remainder {
			alloc++
		}
		text := sec.Text
		if words := strings.Fields(sec.Text); len(words) > alloc {
			text = strings.Join(words[:alloc], " ") + " " + truncationMarker
		}
		blocks = append(blocks, sec.Title+"\n"+text)
	}
	return strings.Join(blocks, "\n\n")
}

// splitSections scans the corpus line by line and cuts it into per-document
// sections at boundary markers. Text before the first marker belongs to a
// default section. The returned bool reports whether any marker was seen.
func splitSections(corpus string) ([]types.DocumentSection, bool) {
	var (
		sections    []types.DocumentSection
		buf         []string
		title       = defaultSectionTitle
		markerFound = false
	)

	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text != "" {
			sections = append(sections, types.DocumentSection{Title: title, Text: text})
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(corpus, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := docMarkerRE.FindStringSubmatch(trimmed); m != nil {
			flush()
			title = m[1]
			markerFound = true
			continue
		}
		if m := fileMarkerRE.FindStringSubmatch(trimmed); m != nil {
			flush()
			title = strings.TrimSpace(m[1])
			markerFound = true
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return sections, markerFound
}

func truncateWithMarker(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[:maxWords], " ") + " " + truncationMarker
}

// TruncateWords caps text at maxWords, splitting only at whitespace.
func TruncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords <= 0 || len(words) <= maxWords {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[:maxWords], " ")
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

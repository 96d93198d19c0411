package service

import "testing"

func TestSanitizeMarkupStripsWholeFence(t *testing.T) {
	raw := "```html\n<h2>Title</h2>\n<p>Body</p>\n```"

	if got := SanitizeMarkup(raw); got != "<h2>Title</h2>\n<p>Body</p>" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeMarkupStripsBareFence(t *testing.T) {
	raw := "```\n<p>hello</p>\n```"

	if got := SanitizeMarkup(raw); got != "<p>hello</p>" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeMarkupLeavesInnerFencesAlone(t *testing.T) {
	raw := "<p>Use a fence:</p>\n```\ncode\n```\n<p>like so.</p>"

	if got := SanitizeMarkup(raw); got != raw {
		t.Fatalf("inner fence was touched: %q", got)
	}
}

func TestSanitizeMarkupStripsWrappingQuotes(t *testing.T) {
	if got := SanitizeMarkup(`"Photosynthesis Basics"`); got != "Photosynthesis Basics" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeMarkup(`'Photosynthesis Basics'`); got != "Photosynthesis Basics" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeMarkupLeavesMismatchedQuotes(t *testing.T) {
	raw := `"she said 'wait`

	if got := SanitizeMarkup(raw); got != raw {
		t.Fatalf("mismatched quotes were stripped: %q", got)
	}
}

func TestSanitizeMarkupUnquotesParagraphs(t *testing.T) {
	raw := `<p>"The cell is the basic unit of life."</p>`

	if got := SanitizeMarkup(raw); got != "<p>The cell is the basic unit of life.</p>" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeMarkupKeepsQuotesInsideParagraphText(t *testing.T) {
	raw := `<p>Darwin called it "descent with modification" in 1859.</p>`

	if got := SanitizeMarkup(raw); got != raw {
		t.Fatalf("inline quotes were stripped: %q", got)
	}
}

func TestSanitizeMarkupFenceAroundQuotedOutput(t *testing.T) {
	raw := "```\n\"<p>wrapped twice</p>\"\n```"

	if got := SanitizeMarkup(raw); got != "<p>wrapped twice</p>" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeMarkupIsIdempotent(t *testing.T) {
	inputs := []string{
		"```html\n<p>one</p>\n```",
		`"quoted title"`,
		`<p>"quoted paragraph"</p>`,
		"plain text with no markup",
		"```\n\"<p>nested</p>\"\n```",
		"  <h2>Heading</h2>\n<p>Para</p>  ",
	}
	for _, in := range inputs {
		once := SanitizeMarkup(in)
		twice := SanitizeMarkup(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

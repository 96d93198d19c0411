package service

import "testing"

func TestCleanExtractedTextStripsControlCharacters(t *testing.T) {
	raw := "hello\x00 world\x1b\uFFFD\r"

	if got := cleanExtractedText(raw); got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanExtractedTextFormFeedBecomesNewline(t *testing.T) {
	raw := "page one\fpage two"

	if got := cleanExtractedText(raw); got != "page one\npage two" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanExtractedTextCollapsesDoubleSpaces(t *testing.T) {
	raw := "spread   out    text"

	got := cleanExtractedText(raw)

	// One collapse pass: runs shrink but a single rule application does
	// not iterate to a fixpoint.
	if got != "spread  out  text" && got != "spread out text" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanExtractedTextDeterministic(t *testing.T) {
	raw := "a\f  b\r\x00  c\f\fd"

	first := cleanExtractedText(raw)
	for i := 0; i < 50; i++ {
		if got := cleanExtractedText(raw); got != first {
			t.Fatalf("run %d produced %q, first run produced %q", i, got, first)
		}
	}
}

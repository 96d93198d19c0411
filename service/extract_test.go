package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/types"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func TestExtractJSONPrefersFencedBlock(t *testing.T) {
	raw := "The answer is [1, 2] but the real payload is:\n```json\n{\"a\": 1}\n```\ndone"

	if got := ExtractJSON(raw); got != `{"a": 1}` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONFenceWithoutLanguageTag(t *testing.T) {
	raw := "```\n[1, 2, 3]\n```"

	if got := ExtractJSON(raw); got != "[1, 2, 3]" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONFallsBackToArraySpan(t *testing.T) {
	raw := `Sure! Here are your cards: [{"front": "Q", "back": "A"}] Hope that helps.`

	if got := ExtractJSON(raw); got != `[{"front": "Q", "back": "A"}]` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONFallsBackToObjectSpan(t *testing.T) {
	raw := `The result {"code": "X"} as requested.`

	if got := ExtractJSON(raw); got != `{"code": "X"}` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONNoPayloadReturnsTrimmedInput(t *testing.T) {
	if got := ExtractJSON("  plain prose, nothing else  "); got != "plain prose, nothing else" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeJSONArrayFencedFlashcards(t *testing.T) {
	raw := "Here are the flashcards:\n```json\n[{\"front\": \"What is Go?\", \"back\": \"A programming language\"}]\n```\nLet me know if you need more."

	cards := decodeJSONArray[types.Flashcard](raw, testLogger())

	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].Front != "What is Go?" || cards[0].Back != "A programming language" {
		t.Fatalf("unexpected card: %+v", cards[0])
	}
}

func TestDecodeJSONArrayRepairsTrailingProseInsideFence(t *testing.T) {
	raw := "```json\n[{\"front\": \"Q\", \"back\": \"A\"}]\nNote: generated as requested.\n```"

	cards := decodeJSONArray[types.Flashcard](raw, testLogger())

	if len(cards) != 1 {
		t.Fatalf("repair pass failed, got %d cards", len(cards))
	}
	if cards[0].Front != "Q" {
		t.Fatalf("unexpected card: %+v", cards[0])
	}
}

func TestDecodeJSONArrayBrokenPayloadReturnsEmpty(t *testing.T) {
	raw := `[{"front": "unterminated`

	cards := decodeJSONArray[types.Flashcard](raw, testLogger())

	if cards == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(cards) != 0 {
		t.Fatalf("expected empty result, got %d cards", len(cards))
	}
}

func TestDecodeJSONArrayStrings(t *testing.T) {
	raw := `["alpha", "beta", "gamma"]`

	topics := decodeJSONArray[string](raw, testLogger())

	if len(topics) != 3 || topics[0] != "alpha" || topics[2] != "gamma" {
		t.Fatalf("got %v", topics)
	}
}

func TestReclipJSONPicksEarlierOpener(t *testing.T) {
	got, ok := reclipJSON(`[{"a": 1}] trailing {junk}`)
	if !ok || got != `[{"a": 1}]` {
		t.Fatalf("got %q ok=%v", got, ok)
	}

	got, ok = reclipJSON(`{"a": [1, 2]} and more`)
	if !ok || got != `{"a": [1, 2]}` {
		t.Fatalf("got %q ok=%v", got, ok)
	}

	if _, ok := reclipJSON("no json here"); ok {
		t.Fatalf("reclip invented a payload")
	}
}

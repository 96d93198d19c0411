package service

import (
	"strings"
	"testing"

	"github.com/minhtran-dev/studynotes-be/config"
	"github.com/minhtran-dev/studynotes-be/types"
)

func TestEstimateSummaryRangeStandardInput(t *testing.T) {
	base := config.WordRange{Min: 900, Max: 1500}

	minWords, maxWords := estimateSummaryRange(base, 2000, false)

	if minWords != 900 || maxWords != 1500 {
		t.Fatalf("mid-size input should keep the base range, got %d-%d", minWords, maxWords)
	}
}

func TestEstimateSummaryRangeShrinksForSmallInput(t *testing.T) {
	base := config.WordRange{Min: 900, Max: 1500}

	minWords, maxWords := estimateSummaryRange(base, 500, false)

	if minWords != 540 || maxWords != 1050 {
		t.Fatalf("got %d-%d, want 540-1050", minWords, maxWords)
	}
}

func TestEstimateSummaryRangeSmallInputHitsFloors(t *testing.T) {
	base := config.WordRange{Min: 400, Max: 800}

	minWords, maxWords := estimateSummaryRange(base, 300, false)

	if minWords != 350 || maxWords != 700 {
		t.Fatalf("floors not applied, got %d-%d", minWords, maxWords)
	}
}

func TestEstimateSummaryRangeGrowsForLargeInput(t *testing.T) {
	base := config.WordRange{Min: 900, Max: 1500}

	minWords, maxWords := estimateSummaryRange(base, 5000, false)

	if minWords != 1170 || maxWords != 2250 {
		t.Fatalf("got %d-%d, want 1170-2250", minWords, maxWords)
	}
}

func TestEstimateSummaryRangeShrinksForParts(t *testing.T) {
	base := config.WordRange{Min: 900, Max: 1500}

	minWords, maxWords := estimateSummaryRange(base, 2000, true)

	if minWords != 450 || maxWords != 900 {
		t.Fatalf("got %d-%d, want 450-900", minWords, maxWords)
	}
}

func TestEstimateSummaryRangePartFloors(t *testing.T) {
	base := config.WordRange{Min: 400, Max: 800}

	minWords, maxWords := estimateSummaryRange(base, 300, true)

	// Small-input scaling lands on the floors, and part scaling of the
	// floors lands on the part floors.
	if minWords != 300 || maxWords != 600 {
		t.Fatalf("got %d-%d, want 300-600", minWords, maxWords)
	}
}

func TestEstimateSummaryRangeMinNeverExceedsMax(t *testing.T) {
	for _, base := range []config.WordRange{
		{Min: 400, Max: 800},
		{Min: 900, Max: 1500},
		{Min: 1500, Max: 2600},
	} {
		for _, words := range []int{100, 799, 800, 4000, 4001, 20000} {
			for _, isPart := range []bool{false, true} {
				minWords, maxWords := estimateSummaryRange(base, words, isPart)
				if minWords > maxWords {
					t.Fatalf("range inverted for base=%+v words=%d isPart=%v: %d-%d",
						base, words, isPart, minWords, maxWords)
				}
			}
		}
	}
}

func TestDocumentHintsCapsAtSix(t *testing.T) {
	docs := make([]types.DocumentMeta, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		docs = append(docs, types.DocumentMeta{Name: name + ".pdf", Type: "application/pdf"})
	}

	hints := documentHints(docs)

	if !strings.Contains(hints, "f.pdf") {
		t.Fatalf("sixth document missing: %q", hints)
	}
	if strings.Contains(hints, "g.pdf") {
		t.Fatalf("seventh document should be omitted: %q", hints)
	}
}

func TestDocumentHintsEmpty(t *testing.T) {
	if got := documentHints(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestSummaryPromptPartFraming(t *testing.T) {
	single := summaryPrompt("text", "", 900, 1500, 0, 0)
	if strings.Contains(single, "part") {
		t.Fatalf("single-shot prompt mentions parts: %q", single)
	}

	part := summaryPrompt("text", "", 450, 900, 2, 3)
	if !strings.Contains(part, "part 2 of 3") {
		t.Fatalf("part prompt missing framing: %q", part)
	}
}

func TestMergeSummaryPromptIncludesEveryPartial(t *testing.T) {
	partials := []string{"<p>first</p>", "<p>second</p>", "<p>third</p>"}

	prompt := mergeSummaryPrompt(partials)

	for i, p := range partials {
		if !strings.Contains(prompt, p) {
			t.Fatalf("partial %d missing from merge prompt", i)
		}
	}
	if !strings.Contains(prompt, "--- Part 3 of 3 ---") {
		t.Fatalf("part separators missing: %q", prompt)
	}
}

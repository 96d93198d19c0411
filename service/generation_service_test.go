package service

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/config"
	"github.com/minhtran-dev/studynotes-be/types"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// fakeAI records every call and answers from a scripted queue. A non-nil
// err wins over the queue for every call.
type fakeAI struct {
	calls     [][]types.Message
	responses []string
	err       error
	onCall    func(call int)
}

func (f *fakeAI) ChatCompletion(ctx context.Context, messages []types.Message, cfg types.ModelConfig) (string, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, messages)
	if f.onCall != nil {
		f.onCall(idx)
	}
	if f.err != nil {
		return "", f.err
	}
	if idx < len(f.responses) {
		return f.responses[idx], nil
	}
	return "ok", nil
}

func (f *fakeAI) prompt(t *testing.T, call int) string {
	t.Helper()
	if call >= len(f.calls) {
		t.Fatalf("no call %d, only %d calls made", call, len(f.calls))
	}
	msgs := f.calls[call]
	return msgs[len(msgs)-1].Content
}

func newTestGen(ai AIService, mutate func(*config.GenerationConfig)) *GenerationService {
	cfg := config.DefaultGenerationConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewGenerationService(ai, cfg)
}

func TestGenerateSummarySingleShot(t *testing.T) {
	ai := &fakeAI{responses: []string{"```html\n<p>summary</p>\n```"}}
	gen := newTestGen(ai, nil)

	got, err := gen.GenerateSummary(context.Background(), types.GenerationRequest{
		Kind:   types.KindSummary,
		Corpus: "photosynthesis turns light into chemical energy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<p>summary</p>" {
		t.Fatalf("output not sanitized: %q", got)
	}
	if len(ai.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(ai.calls))
	}
	if !strings.Contains(ai.prompt(t, 0), "photosynthesis") {
		t.Fatalf("corpus missing from prompt")
	}
}

func TestGenerateSummaryMapReduceSequencing(t *testing.T) {
	ai := &fakeAI{responses: []string{"<p>P1</p>", "<p>P2</p>", "<p>P3</p>", "<p>merged</p>"}}
	gen := newTestGen(ai, func(cfg *config.GenerationConfig) {
		cfg.ChunkWords = 10
	})

	got, err := gen.GenerateSummary(context.Background(), types.GenerationRequest{
		Kind:   types.KindSummary,
		Corpus: strings.Repeat("word ", 30),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<p>merged</p>" {
		t.Fatalf("got %q", got)
	}

	// 3 chunk calls in order, then exactly one merge call.
	if len(ai.calls) != 4 {
		t.Fatalf("expected 4 calls, got %d", len(ai.calls))
	}
	for i := 0; i < 3; i++ {
		want := []string{"part 1 of 3", "part 2 of 3", "part 3 of 3"}[i]
		if !strings.Contains(ai.prompt(t, i), want) {
			t.Fatalf("call %d missing %q framing: %q", i, want, ai.prompt(t, i))
		}
	}

	merge := ai.prompt(t, 3)
	if !strings.Contains(merge, "3 partial summaries") {
		t.Fatalf("last call is not the merge call: %q", merge)
	}
	for _, partial := range []string{"<p>P1</p>", "<p>P2</p>", "<p>P3</p>"} {
		if !strings.Contains(merge, partial) {
			t.Fatalf("merge prompt missing partial %q", partial)
		}
	}
}

func TestGenerateSummaryQuotaStopsRemainingChunks(t *testing.T) {
	quota := &types.QuotaError{Code: types.QuotaCodeDailyLimit, Limit: 100}
	ai := &fakeAI{}
	ai.onCall = func(call int) {
		if call == 1 {
			ai.err = quota
		}
	}
	gen := newTestGen(ai, func(cfg *config.GenerationConfig) {
		cfg.ChunkWords = 10
	})

	_, err := gen.GenerateSummary(context.Background(), types.GenerationRequest{
		Corpus: strings.Repeat("word ", 30),
	})

	var qe *types.QuotaError
	if !errors.As(err, &qe) || qe.Limit != 100 {
		t.Fatalf("expected the quota error back, got %v", err)
	}
	if len(ai.calls) != 2 {
		t.Fatalf("remaining chunks should not run, got %d calls", len(ai.calls))
	}
}

func TestGenerateSummaryCancelledBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ai := &fakeAI{}
	ai.onCall = func(call int) {
		if call == 0 {
			cancel()
		}
	}
	gen := newTestGen(ai, func(cfg *config.GenerationConfig) {
		cfg.ChunkWords = 10
	})

	_, err := gen.GenerateSummary(ctx, types.GenerationRequest{
		Corpus: strings.Repeat("word ", 30),
	})

	var ge *types.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected a generation error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancellation cause lost: %v", err)
	}
	if len(ai.calls) != 1 {
		t.Fatalf("no call may start after cancellation, got %d calls", len(ai.calls))
	}
}

func TestQuotaErrorsPropagateFromEveryKind(t *testing.T) {
	quota := &types.QuotaError{
		Code:      types.QuotaCodeDailyLimit,
		Limit:     50,
		Remaining: 0,
		ResetAt:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	ai := &fakeAI{err: quota}
	gen := newTestGen(ai, nil)
	ctx := context.Background()
	req := types.GenerationRequest{Corpus: "some material", TargetCount: 5}

	checks := map[string]func() error{
		"summary": func() error {
			_, err := gen.GenerateSummary(ctx, req)
			return err
		},
		"flashcards": func() error {
			_, err := gen.GenerateFlashcards(ctx, req)
			return err
		},
		"quiz": func() error {
			_, err := gen.GenerateQuiz(ctx, req)
			return err
		},
		"exercises": func() error {
			_, err := gen.GenerateExercises(ctx, req)
			return err
		},
		"topics": func() error {
			_, err := gen.GenerateTopics(ctx, req)
			return err
		},
		"chat": func() error {
			_, err := gen.Chat(ctx, "", []types.Message{{Role: types.RoleUser, Content: "hi"}}, types.ModelConfig{})
			return err
		},
	}
	for kind, run := range checks {
		err := run()
		var qe *types.QuotaError
		if !errors.As(err, &qe) {
			t.Fatalf("%s: expected quota error, got %v", kind, err)
		}
		if qe.Limit != 50 || !qe.ResetAt.Equal(quota.ResetAt) {
			t.Fatalf("%s: quota payload mutated: %+v", kind, qe)
		}
	}
}

func TestGenerateTitleFallsBackOnQuotaError(t *testing.T) {
	ai := &fakeAI{err: &types.QuotaError{Code: types.QuotaCodeAccountLimit}}
	gen := newTestGen(ai, nil)

	title := gen.GenerateTitle(context.Background(), types.GenerationRequest{Corpus: "text"})

	if title != "Untitled note" {
		t.Fatalf("got %q", title)
	}
}

func TestGenerateTitleCleansOutput(t *testing.T) {
	ai := &fakeAI{responses: []string{"\"Neural   Networks\"\n"}}
	gen := newTestGen(ai, nil)

	title := gen.GenerateTitle(context.Background(), types.GenerationRequest{Corpus: "text"})

	if title != "Neural Networks" {
		t.Fatalf("got %q", title)
	}
}

func TestGenerateTitleClampsLength(t *testing.T) {
	ai := &fakeAI{responses: []string{"This Title Is Way Too Long For The Configured Cap"}}
	gen := newTestGen(ai, nil)

	title := gen.GenerateTitle(context.Background(), types.GenerationRequest{Corpus: "text"})

	if len(title) > 35 {
		t.Fatalf("title too long (%d chars): %q", len(title), title)
	}
	if !strings.HasPrefix(title, "This Title") {
		t.Fatalf("got %q", title)
	}
}

func TestGenerateTitleKeepsMultiByteRunes(t *testing.T) {
	title := strings.Repeat("é", 20)
	ai := &fakeAI{responses: []string{title}}
	gen := newTestGen(ai, nil)

	got := gen.GenerateTitle(context.Background(), types.GenerationRequest{Corpus: "text"})

	// 20 runes are within the 35-character cap even though they span 40
	// bytes; the title must come back whole.
	if got != title {
		t.Fatalf("got %q, want %q", got, title)
	}
}

func TestGenerateTitleClampsOnRunesNotBytes(t *testing.T) {
	ai := &fakeAI{responses: []string{strings.Repeat("é", 40)}}
	gen := newTestGen(ai, nil)

	got := gen.GenerateTitle(context.Background(), types.GenerationRequest{Corpus: "text"})

	if !utf8.ValidString(got) {
		t.Fatalf("title cut mid-rune: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 35 {
		t.Fatalf("expected 35 runes, got %d: %q", n, got)
	}
}

func TestGenerateTitleEmptyOutputFallsBack(t *testing.T) {
	ai := &fakeAI{responses: []string{"  \n"}}
	gen := newTestGen(ai, nil)

	title := gen.GenerateTitle(context.Background(), types.GenerationRequest{Corpus: "text"})

	if title != "Untitled note" {
		t.Fatalf("got %q", title)
	}
}

func TestGenerateFlashcardsClampsToTargetCount(t *testing.T) {
	ai := &fakeAI{responses: []string{
		`[{"front":"1","back":"a"},{"front":"2","back":"b"},{"front":"3","back":"c"},{"front":"4","back":"d"},{"front":"5","back":"e"}]`,
	}}
	gen := newTestGen(ai, nil)

	cards, err := gen.GenerateFlashcards(context.Background(), types.GenerationRequest{
		Corpus:      "material",
		TargetCount: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].Front != "1" || cards[2].Front != "3" {
		t.Fatalf("clamp must keep the leading cards: %+v", cards)
	}
}

func TestGenerateFlashcardsDegradesToEmptyOnGenericError(t *testing.T) {
	ai := &fakeAI{err: &types.GenerationError{Message: "model call failed"}}
	gen := newTestGen(ai, nil)

	cards, err := gen.GenerateFlashcards(context.Background(), types.GenerationRequest{
		Corpus:      "material",
		TargetCount: 5,
	})
	if err != nil {
		t.Fatalf("generic failures should degrade, got %v", err)
	}
	if cards == nil || len(cards) != 0 {
		t.Fatalf("expected empty slice, got %v", cards)
	}
}

func TestGenerateSummaryDoesNotDegradeOnGenericError(t *testing.T) {
	ai := &fakeAI{err: &types.GenerationError{Message: "model call failed"}}
	gen := newTestGen(ai, nil)

	_, err := gen.GenerateSummary(context.Background(), types.GenerationRequest{Corpus: "material"})

	var ge *types.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("summary must propagate generic errors, got %v", err)
	}
}

func TestGenerateQuizBrokenOutputDegradesToEmpty(t *testing.T) {
	ai := &fakeAI{responses: []string{"sorry, I cannot produce JSON today"}}
	gen := newTestGen(ai, nil)

	questions, err := gen.GenerateQuiz(context.Background(), types.GenerationRequest{
		Corpus:      "material",
		TargetCount: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected empty result, got %v", questions)
	}
}

func TestGenerateTopicsCapsAtConfiguredMax(t *testing.T) {
	ai := &fakeAI{responses: []string{`["a","b","c","d","e","f"]`}}
	gen := newTestGen(ai, nil)

	topics, err := gen.GenerateTopics(context.Background(), types.GenerationRequest{Corpus: "material"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) != 4 {
		t.Fatalf("expected the default cap of 4 topics, got %d", len(topics))
	}

	ai = &fakeAI{responses: []string{`["a","b","c","d","e","f"]`}}
	gen = newTestGen(ai, func(cfg *config.GenerationConfig) {
		cfg.TopicsMax = 2
	})
	topics, err = gen.GenerateTopics(context.Background(), types.GenerationRequest{Corpus: "material"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected the configured cap of 2 topics, got %d", len(topics))
	}
}

func TestChatEmbedsNoteContextInSystemMessage(t *testing.T) {
	ai := &fakeAI{responses: []string{"mitochondria make ATP"}}
	gen := newTestGen(ai, nil)

	answer, err := gen.Chat(context.Background(), "the mitochondria is the powerhouse of the cell",
		[]types.Message{{Role: types.RoleUser, Content: "what makes ATP?"}}, types.ModelConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "mitochondria make ATP" {
		t.Fatalf("got %q", answer)
	}

	msgs := ai.calls[0]
	if len(msgs) != 2 {
		t.Fatalf("expected system + user message, got %d messages", len(msgs))
	}
	if msgs[0].Role != types.RoleSystem || !strings.Contains(msgs[0].Content, "powerhouse") {
		t.Fatalf("note context missing from system message: %+v", msgs[0])
	}
	if msgs[1].Role != types.RoleUser || msgs[1].Content != "what makes ATP?" {
		t.Fatalf("user message mangled: %+v", msgs[1])
	}
}

func TestChatWithoutNoteContext(t *testing.T) {
	ai := &fakeAI{}
	gen := newTestGen(ai, nil)

	_, err := gen.Chat(context.Background(), "  ",
		[]types.Message{{Role: types.RoleUser, Content: "hello"}}, types.ModelConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(ai.calls[0][0].Content, "asking about this note") {
		t.Fatalf("empty context should not be framed as a note: %q", ai.calls[0][0].Content)
	}
}

func TestGenerateFlashcardsPromptCarriesCountAndHints(t *testing.T) {
	ai := &fakeAI{responses: []string{`[]`}}
	gen := newTestGen(ai, nil)

	_, err := gen.GenerateFlashcards(context.Background(), types.GenerationRequest{
		Corpus:      "material",
		TargetCount: 7,
		Documents:   []types.DocumentMeta{{Name: "lecture.pdf", Type: "application/pdf"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompt := ai.prompt(t, 0)
	if !strings.Contains(prompt, "exactly 7 flashcards") {
		t.Fatalf("target count missing: %q", prompt)
	}
	if !strings.Contains(prompt, "lecture.pdf (application/pdf)") {
		t.Fatalf("document hint missing: %q", prompt)
	}
}

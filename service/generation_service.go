package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/config"
	"github.com/minhtran-dev/studynotes-be/types"
)

// GenerationService drives every content kind against the upstream model:
// balance the corpus, split it when needed, run single-shot or sequential
// map-reduce, and route raw output through extraction or sanitizing.
type GenerationService struct {
	ai     AIService
	cfg    config.GenerationConfig
	logger *logrus.Entry
}

func NewGenerationService(ai AIService, cfg config.GenerationConfig) *GenerationService {
	return &GenerationService{
		ai:     ai,
		cfg:    cfg,
		logger: logrus.WithField("service", "generation"),
	}
}

// GenerateSummary produces an HTML summary of the corpus. When the
// balanced corpus exceeds one chunk it runs map-reduce: one call per chunk
// in order, then one merge call over all partial summaries. Chunk calls
// are strictly sequential; the part-i-of-N framing depends on it, and the
// gateway enforces a per-caller quota that parallel calls would only race.
// Both quota and generic errors propagate to the caller.
func (s *GenerationService) GenerateSummary(ctx context.Context, req types.GenerationRequest) (string, error) {
	balanced := BalanceContext(req.Corpus, 2*s.cfg.ChunkWords)
	chunks := SplitIntoChunks(balanced, s.cfg.ChunkWords)
	hints := documentHints(req.Documents)

	if len(chunks) == 1 {
		minWords, maxWords := s.summaryRange(req.DetailLevel, wordCount(chunks[0].Text), false)
		out, err := s.complete(ctx, summaryPrompt(chunks[0].Text, hints, minWords, maxWords, 0, 0), req.Model)
		if err != nil {
			return "", err
		}
		return SanitizeMarkup(out), nil
	}

	partials := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		// A cancelled request lets the in-flight call finish but never
		// starts the next one.
		if err := ctx.Err(); err != nil {
			return "", &types.GenerationError{Message: "summary generation cancelled", Cause: err}
		}
		minWords, maxWords := s.summaryRange(req.DetailLevel, wordCount(chunk.Text), true)
		out, err := s.complete(ctx, summaryPrompt(chunk.Text, hints, minWords, maxWords, chunk.Index, chunk.Total), req.Model)
		if err != nil {
			return "", err
		}
		partials = append(partials, SanitizeMarkup(out))
	}

	if err := ctx.Err(); err != nil {
		return "", &types.GenerationError{Message: "summary generation cancelled", Cause: err}
	}
	merged, err := s.complete(ctx, mergeSummaryPrompt(partials), req.Model)
	if err != nil {
		return "", err
	}
	return SanitizeMarkup(merged), nil
}

// GenerateFlashcards returns at most req.TargetCount cards. Generic
// failures degrade to an empty slice; quota errors propagate.
func (s *GenerationService) GenerateFlashcards(ctx context.Context, req types.GenerationRequest) ([]types.Flashcard, error) {
	balanced := BalanceContext(req.Corpus, s.cfg.CardContextWords)
	out, err := s.complete(ctx, flashcardsPrompt(balanced, documentHints(req.Documents), req.TargetCount), req.Model)
	if err != nil {
		if s.degrades(types.KindFlashcards, err) {
			return []types.Flashcard{}, nil
		}
		return nil, err
	}
	cards := decodeJSONArray[types.Flashcard](out, s.logger)
	return clampCount(cards, req.TargetCount), nil
}

// GenerateQuiz returns at most req.TargetCount questions, with the same
// error policy as flashcards.
func (s *GenerationService) GenerateQuiz(ctx context.Context, req types.GenerationRequest) ([]types.QuizQuestion, error) {
	balanced := BalanceContext(req.Corpus, s.cfg.CardContextWords)
	out, err := s.complete(ctx, quizPrompt(balanced, documentHints(req.Documents), req.TargetCount), req.Model)
	if err != nil {
		if s.degrades(types.KindQuiz, err) {
			return []types.QuizQuestion{}, nil
		}
		return nil, err
	}
	questions := decodeJSONArray[types.QuizQuestion](out, s.logger)
	return clampCount(questions, req.TargetCount), nil
}

// GenerateExercises returns at most req.TargetCount exercises, with the
// same error policy as flashcards.
func (s *GenerationService) GenerateExercises(ctx context.Context, req types.GenerationRequest) ([]types.Exercise, error) {
	balanced := BalanceContext(req.Corpus, s.cfg.CardContextWords)
	out, err := s.complete(ctx, exercisesPrompt(balanced, documentHints(req.Documents), req.TargetCount), req.Model)
	if err != nil {
		if s.degrades(types.KindExercises, err) {
			return []types.Exercise{}, nil
		}
		return nil, err
	}
	exercises := decodeJSONArray[types.Exercise](out, s.logger)
	return clampCount(exercises, req.TargetCount), nil
}

// GenerateTopics returns 3-4 topic prompts for the note.
func (s *GenerationService) GenerateTopics(ctx context.Context, req types.GenerationRequest) ([]string, error) {
	excerpt := TruncateWords(req.Corpus, s.cfg.TopicContextWords)
	out, err := s.complete(ctx, topicsPrompt(excerpt, documentHints(req.Documents)), req.Model)
	if err != nil {
		if s.degrades(types.KindTopics, err) {
			return []string{}, nil
		}
		return nil, err
	}
	topics := decodeJSONArray[string](out, s.logger)
	return clampCount(topics, s.cfg.TopicsMax), nil
}

// GenerateTitle is best-effort and never fails: on any error, quota
// included, it returns the configured fallback title. A missing title must
// not block note creation.
func (s *GenerationService) GenerateTitle(ctx context.Context, req types.GenerationRequest) string {
	excerpt := TruncateWords(req.Corpus, s.cfg.TitleContextWords)
	out, err := s.complete(ctx, titlePrompt(excerpt, s.cfg.TitleMaxChars), req.Model)
	if err != nil {
		s.logger.WithError(err).Warn("title generation failed, using fallback title")
		return s.cfg.FallbackTitle
	}
	title := s.cleanTitle(out)
	if title == "" {
		return s.cfg.FallbackTitle
	}
	return title
}

// Chat answers free-form questions with the note's text as context. Both
// error kinds propagate unmodified.
func (s *GenerationService) Chat(ctx context.Context, noteContext string, messages []types.Message, cfg types.ModelConfig) (string, error) {
	all := make([]types.Message, 0, len(messages)+1)
	all = append(all, types.Message{
		Role:    types.RoleSystem,
		Content: chatSystemPrompt(TruncateWords(noteContext, s.cfg.ChatContextWords)),
	})
	all = append(all, messages...)
	return s.ai.ChatCompletion(ctx, all, cfg)
}

func (s *GenerationService) complete(ctx context.Context, prompt string, cfg types.ModelConfig) (string, error) {
	return s.ai.ChatCompletion(ctx, []types.Message{
		{Role: types.RoleSystem, Content: systemPrompt},
		{Role: types.RoleUser, Content: prompt},
	}, cfg)
}

// degrades reports whether err should collapse into an empty result for a
// degradable kind. Quota errors never degrade; they must reach the caller.
func (s *GenerationService) degrades(kind types.ContentKind, err error) bool {
	var qe *types.QuotaError
	if errors.As(err, &qe) {
		return false
	}
	s.logger.WithField("kind", string(kind)).WithError(err).Warn("generation failed, returning empty result")
	return true
}

func (s *GenerationService) summaryRange(level types.DetailLevel, promptWords int, isPart bool) (int, int) {
	var base config.WordRange
	switch level {
	case types.DetailConcise:
		base = s.cfg.Concise
	case types.DetailComprehensive:
		base = s.cfg.Comprehensive
	default:
		base = s.cfg.Standard
	}
	return estimateSummaryRange(base, promptWords, isPart)
}

func (s *GenerationService) cleanTitle(raw string) string {
	title := SanitizeMarkup(raw)
	title = strings.Join(strings.Fields(title), " ")
	title = strings.Trim(title, `"'`)
	// The cap counts characters, so clamp on runes, not bytes.
	if runes := []rune(title); len(runes) > s.cfg.TitleMaxChars {
		title = strings.TrimSpace(string(runes[:s.cfg.TitleMaxChars]))
	}
	return title
}

func clampCount[T any](items []T, count int) []T {
	if count > 0 && len(items) > count {
		return items[:count]
	}
	return items
}

package service

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

var fencedBlockRE = regexp.MustCompile("(?is)```(?:json)?\\s*\\n?(.*?)```")

// ExtractJSON pulls the most plausible JSON payload out of noisy model
// text. Priority: a fenced code block, then the outermost [...] span,
// then the outermost {...} span, then the trimmed raw text as-is. The
// caller owns parsing; a parse failure downstream is reported, not
// retried against the model.
func ExtractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if m := fencedBlockRE.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	if start := strings.Index(trimmed, "["); start >= 0 {
		if end := strings.LastIndex(trimmed, "]"); end > start {
			return trimmed[start : end+1]
		}
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return trimmed[start : end+1]
		}
	}
	return trimmed
}

// reclipJSON is the one repair pass applied after a failed parse: cut the
// string back to the span between the first JSON opener and its matching
// last closer. Models sometimes leak trailing prose into an otherwise
// valid payload.
func reclipJSON(s string) (string, bool) {
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start, end := -1, -1
	switch {
	case arrStart >= 0 && (objStart < 0 || arrStart < objStart):
		start = arrStart
		end = strings.LastIndex(s, "]")
	case objStart >= 0:
		start = objStart
		end = strings.LastIndex(s, "}")
	}
	if start >= 0 && end > start {
		return s[start : end+1], true
	}
	return "", false
}

// decodeJSONArray extracts and parses a JSON array of T from raw model
// output. On a parse failure it tries the repair pass once, then logs the
// raw text with the error position and returns an empty slice: a broken
// flashcard batch must not abort the whole note-creation flow.
func decodeJSONArray[T any](raw string, logger *logrus.Entry) []T {
	payload := ExtractJSON(raw)

	out := []T{}
	err := json.Unmarshal([]byte(payload), &out)
	if err == nil {
		return out
	}
	if repaired, ok := reclipJSON(payload); ok {
		if json.Unmarshal([]byte(repaired), &out) == nil {
			return out
		}
	}

	fields := logrus.Fields{"raw": raw}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		fields["offset"] = syn.Offset
	}
	logger.WithFields(fields).WithError(err).Warn("failed to decode model output, returning empty result")
	return []T{}
}

package service

import (
	"strings"

	"github.com/minhtran-dev/studynotes-be/types"
)

// SplitIntoChunks divides text into consecutive windows of at most
// maxWords words, numbered 1..N. Splits happen only at whitespace
// boundaries; an input that already fits is returned as a single chunk,
// unmodified. Deterministic for identical input.
func SplitIntoChunks(text string, maxWords int) []types.ContentChunk {
	words := strings.Fields(text)
	if maxWords <= 0 || len(words) <= maxWords {
		return []types.ContentChunk{{Index: 1, Total: 1, Text: text}}
	}

	total := (len(words) + maxWords - 1) / maxWords
	chunks := make([]types.ContentChunk, 0, total)
	for i := 0; i < total; i++ {
		start := i * maxWords
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, types.ContentChunk{
			Index: i + 1,
			Total: total,
			Text:  strings.Join(words[start:end], " "),
		})
	}
	return chunks
}

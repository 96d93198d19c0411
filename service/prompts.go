package service

import (
	"fmt"
	"strings"

	"github.com/minhtran-dev/studynotes-be/config"
	"github.com/minhtran-dev/studynotes-be/types"
)

const systemPrompt = "You are a study assistant. You turn course material into clear, accurate study content. Base everything strictly on the provided material and never invent facts."

// maxDocumentHints caps how many attached-document names get embedded in
// a prompt; further ones are omitted.
const maxDocumentHints = 6

func documentHints(docs []types.DocumentMeta) string {
	if len(docs) == 0 {
		return ""
	}
	n := len(docs)
	if n > maxDocumentHints {
		n = maxDocumentHints
	}
	names := make([]string, 0, n)
	for _, doc := range docs[:n] {
		names = append(names, fmt.Sprintf("%s (%s)", doc.Name, doc.Type))
	}
	return "Source documents: " + strings.Join(names, ", ") + "."
}

// estimateSummaryRange computes the target word range embedded in a
// summary prompt. The range is an instruction to the model, not a hard
// constraint. Small inputs shrink the range, very large inputs grow it,
// and a chunk of a multi-chunk run shrinks it again since each part only
// covers a fraction of the whole.
func estimateSummaryRange(base config.WordRange, promptWords int, isPart bool) (int, int) {
	minWords, maxWords := base.Min, base.Max

	switch {
	case promptWords < 800:
		minWords = maxInt(350, int(float64(minWords)*0.6))
		maxWords = maxInt(700, int(float64(maxWords)*0.7))
	case promptWords > 4000:
		minWords = int(float64(minWords) * 1.3)
		maxWords = int(float64(maxWords) * 1.5)
	}

	if isPart {
		minWords = maxInt(300, int(float64(minWords)*0.5))
		maxWords = maxInt(600, int(float64(maxWords)*0.6))
	}

	return minWords, maxWords
}

func summaryPrompt(text, hints string, minWords, maxWords, part, total int) string {
	var b strings.Builder
	if part > 0 {
		fmt.Fprintf(&b, "You are summarizing part %d of %d of a larger document set. Summarize only the material below; another pass will merge the parts.\n\n", part, total)
	} else {
		b.WriteString("Write a structured summary of the material below.\n\n")
	}
	if hints != "" {
		b.WriteString(hints + "\n\n")
	}
	fmt.Fprintf(&b, "Aim for %d to %d words. Use short paragraphs with <h2> section headings and <p> paragraphs. Cover every major idea, keep the original order, and do not add commentary about the summarizing task itself.\n\n", minWords, maxWords)
	b.WriteString("Material:\n" + text)
	return b.String()
}

func mergeSummaryPrompt(partials []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Below are %d partial summaries of consecutive parts of the same document set. Merge them into one cohesive summary: deduplicate repeated points, keep the structure and headings, and preserve the original order of ideas. Output only the merged summary.\n", len(partials))
	for i, p := range partials {
		fmt.Fprintf(&b, "\n--- Part %d of %d ---\n%s\n", i+1, len(partials), p)
	}
	return b.String()
}

func flashcardsPrompt(text, hints string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d flashcards from the material below.\n\n", count)
	if hints != "" {
		b.WriteString(hints + "\n\n")
	}
	b.WriteString(`Respond with a JSON array only, no prose, in this shape:
[{"front": "question or term", "back": "answer or definition"}]

Material:
`)
	b.WriteString(text)
	return b.String()
}

func quizPrompt(text, hints string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d multiple-choice quiz questions from the material below. Each question gets 4 options and exactly one correct answer.\n\n", count)
	if hints != "" {
		b.WriteString(hints + "\n\n")
	}
	b.WriteString(`Respond with a JSON array only, no prose, in this shape:
[{"question": "...", "options": ["a", "b", "c", "d"], "answer": 0, "explanation": "..."}]

"answer" is the zero-based index of the correct option.

Material:
`)
	b.WriteString(text)
	return b.String()
}

func exercisesPrompt(text, hints string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d practice exercises from the material below. Each exercise is an open-ended task with a worked solution.\n\n", count)
	if hints != "" {
		b.WriteString(hints + "\n\n")
	}
	b.WriteString(`Respond with a JSON array only, no prose, in this shape:
[{"prompt": "...", "solution": "..."}]

Material:
`)
	b.WriteString(text)
	return b.String()
}

func topicsPrompt(text, hints string) string {
	var b strings.Builder
	b.WriteString("List the 3 to 4 main topics covered by the material below, as short noun phrases a student could use as discussion prompts.\n\n")
	if hints != "" {
		b.WriteString(hints + "\n\n")
	}
	b.WriteString(`Respond with a JSON array of strings only, no prose:
["topic one", "topic two"]

Material:
`)
	b.WriteString(text)
	return b.String()
}

func titlePrompt(text string, maxChars int) string {
	return fmt.Sprintf(`Write a title for the note below. Use 2 to 4 words and at most %d characters. Respond with the title only: no quotes, no punctuation at the end, no explanation.

Note:
%s`, maxChars, text)
}

func chatSystemPrompt(noteContext string) string {
	if strings.TrimSpace(noteContext) == "" {
		return systemPrompt
	}
	return systemPrompt + "\n\nThe student is asking about this note:\n" + noteContext
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

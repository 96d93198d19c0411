package types

// ContentKind names one generated artifact of a note.
type ContentKind string

const (
	KindSummary    ContentKind = "summary"
	KindFlashcards ContentKind = "flashcards"
	KindQuiz       ContentKind = "quiz"
	KindExercises  ContentKind = "exercises"
	KindTopics     ContentKind = "topics"
	KindTitle      ContentKind = "title"
	KindChat       ContentKind = "chat"
)

// DetailLevel selects the base word range of a summary.
type DetailLevel string

const (
	DetailConcise       DetailLevel = "concise"
	DetailStandard      DetailLevel = "standard"
	DetailComprehensive DetailLevel = "comprehensive"
)

// ModelConfig carries the per-request model selection. Empty fields fall
// back to the configured defaults.
type ModelConfig struct {
	Model       string  `json:"model,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

// DocumentMeta is the name-and-type hint embedded in prompts; it never
// carries document text.
type DocumentMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// GenerationRequest is the input for one content kind of one note.
type GenerationRequest struct {
	Kind        ContentKind
	Corpus      string
	Documents   []DocumentMeta
	DetailLevel DetailLevel
	TargetCount int
	Model       ModelConfig
}

// DocumentSection is one document's slice of the corpus, cut at boundary
// markers.
type DocumentSection struct {
	Title string
	Text  string
}

// ContentChunk is one window of a split corpus, numbered 1..Total.
type ContentChunk struct {
	Index int
	Total int
	Text  string
}

type Flashcard struct {
	Front string `bson:"front" json:"front"`
	Back  string `bson:"back" json:"back"`
}

type QuizQuestion struct {
	Question    string   `bson:"question" json:"question"`
	Options     []string `bson:"options" json:"options"`
	Answer      int      `bson:"answer" json:"answer"`
	Explanation string   `bson:"explanation" json:"explanation,omitempty"`
}

type Exercise struct {
	Prompt   string `bson:"prompt" json:"prompt"`
	Solution string `bson:"solution" json:"solution"`
}

// StudyContent is everything generated for one note, keyed by the note ID.
type StudyContent struct {
	NoteID        string         `bson:"_id" json:"note_id"`
	Summary       string         `bson:"summary" json:"summary,omitempty"`
	Flashcards    []Flashcard    `bson:"flashcards" json:"flashcards,omitempty"`
	QuizQuestions []QuizQuestion `bson:"quiz_questions" json:"quiz_questions,omitempty"`
	Exercises     []Exercise     `bson:"exercises" json:"exercises,omitempty"`
	Topics        []string       `bson:"topics" json:"topics,omitempty"`
	UpdatedAt     int64          `bson:"updated_at" json:"updated_at"`
}

// StudyContentUpdate is a partial update; nil fields are left untouched in
// the store.
type StudyContentUpdate struct {
	Summary       *string
	Flashcards    *[]Flashcard
	QuizQuestions *[]QuizQuestion
	Exercises     *[]Exercise
	Topics        *[]string
}

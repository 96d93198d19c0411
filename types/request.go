package types

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UploadRequest struct {
	Name string `json:"name"`
}

type AttachLinkRequest struct {
	URL string `json:"url"`
}

// GenerateRequest asks for one or more content kinds for a note.
type GenerateRequest struct {
	Kinds       []string `json:"kinds"`
	DetailLevel string   `json:"detail_level,omitempty"`
	TargetCount int      `json:"target_count,omitempty"`
	Model       string   `json:"model,omitempty"`
}

type ChatRequest struct {
	NoteID   string    `json:"note_id"`
	Messages []Message `json:"messages"`
}

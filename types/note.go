package types

// Note is the student's top-level object: manual content plus attached
// documents, and the unit study content is generated for.
type Note struct {
	ID        string `bson:"_id" json:"id"`
	Title     string `bson:"title" json:"title"`
	Content   string `bson:"content" json:"content"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
	UpdatedAt int64  `bson:"updated_at" json:"updated_at"`
}

// Document is one ingested attachment of a note. The extracted text is
// stored but never serialized to API responses; it can be large.
type Document struct {
	ID        string `bson:"_id" json:"id"`
	NoteID    string `bson:"note_id" json:"note_id"`
	Name      string `bson:"name" json:"name"`
	MimeType  string `bson:"mime_type" json:"mime_type"`
	Text      string `bson:"text" json:"-"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
}

// ExtractedDocument is the output of a DocumentProcessor.
type ExtractedDocument struct {
	Text     string
	MimeType string
}

// Transcript is the output of audio transcription or link scraping.
type Transcript struct {
	Text  string
	Title string
}

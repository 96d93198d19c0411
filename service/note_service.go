package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/repository"
	"github.com/minhtran-dev/studynotes-be/types"
)

// NoteService owns notes and their corpus: the note's manual content plus
// every attached document's extracted text, joined under boundary marker
// lines the context balancer understands.
type NoteService struct {
	notes   repository.NoteRepo
	gen     *GenerationService
	scraper LinkScraper // optional
	logger  *logrus.Entry
}

func NewNoteService(notes repository.NoteRepo, gen *GenerationService, scraper LinkScraper) *NoteService {
	return &NoteService{
		notes:   notes,
		gen:     gen,
		scraper: scraper,
		logger:  logrus.WithField("service", "note"),
	}
}

// CreateNote stores a new note. When no title is supplied one is
// generated from the content; title generation is best-effort and falls
// back to a default rather than failing note creation.
func (s *NoteService) CreateNote(ctx context.Context, req types.CreateNoteRequest) (*types.Note, error) {
	now := time.Now().Unix()
	note := &types.Note{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if note.Title == "" {
		note.Title = s.gen.GenerateTitle(ctx, types.GenerationRequest{
			Kind:   types.KindTitle,
			Corpus: req.Content,
		})
	}
	if err := s.notes.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) GetNote(ctx context.Context, id string) (*types.Note, error) {
	return s.notes.GetNote(ctx, id)
}

// AttachLink scrapes the URL through the configured collaborator and
// stores the result as one more document on the note.
func (s *NoteService) AttachLink(ctx context.Context, noteID, url string) (*types.Document, error) {
	if s.scraper == nil {
		return nil, errors.New("link ingestion is not configured")
	}
	transcript, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape link: %w", err)
	}
	name := transcript.Title
	if name == "" {
		name = url
	}
	doc := &types.Document{
		ID:        uuid.NewString(),
		NoteID:    noteID,
		Name:      name,
		MimeType:  "text/html",
		Text:      transcript.Text,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.notes.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// BuildCorpus assembles the full generation input for a note. Each
// document's text goes under a "--- Document: <name> ---" line; the exact
// format is shared with the context balancer and must not drift.
func (s *NoteService) BuildCorpus(ctx context.Context, noteID string) (string, []types.DocumentMeta, error) {
	note, err := s.notes.GetNote(ctx, noteID)
	if err != nil {
		return "", nil, err
	}
	docs, err := s.notes.ListDocuments(ctx, noteID)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(note.Content))

	meta := make([]types.DocumentMeta, 0, len(docs))
	for _, doc := range docs {
		fmt.Fprintf(&b, "\n\n--- Document: %s ---\n%s", doc.Name, doc.Text)
		meta = append(meta, types.DocumentMeta{Name: doc.Name, Type: doc.MimeType})
	}
	return strings.TrimSpace(b.String()), meta, nil
}

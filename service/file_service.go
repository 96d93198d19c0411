package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/repository"
	"github.com/minhtran-dev/studynotes-be/types"
	"github.com/minhtran-dev/studynotes-be/utils"
)

// FileService stores uploaded files and runs them through the matching
// DocumentProcessor to attach their text to a note.
type FileService struct {
	uploadDir  string
	processors map[string]DocumentProcessor
	notes      repository.NoteRepo
	logger     *logrus.Entry
}

func NewFileService(uploadDir string, notes repository.NoteRepo) *FileService {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		panic(err)
	}
	text := NewTextProcessor()
	return &FileService{
		uploadDir: uploadDir,
		processors: map[string]DocumentProcessor{
			".pdf": NewPDFProcessor(),
			".txt": text,
			".md":  text,
		},
		notes:  notes,
		logger: logrus.WithField("service", "file"),
	}
}

// UploadDocument saves the file, extracts its text and stores the result
// as a document on the note.
func (s *FileService) UploadDocument(ctx context.Context, noteID, name string, file *multipart.FileHeader) (*types.Document, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	processor, ok := s.processors[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	if name == "" {
		name = file.Filename
	}

	path, err := s.saveUpload(file)
	if err != nil {
		return nil, err
	}

	extracted, err := processor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}

	doc := &types.Document{
		ID:        uuid.NewString(),
		NoteID:    noteID,
		Name:      name,
		MimeType:  extracted.MimeType,
		Text:      extracted.Text,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.notes.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"note_id": noteID,
		"name":    name,
		"words":   wordCount(extracted.Text),
	}).Info("attached document")
	return doc, nil
}

// IngestFile is the CLI path: same pipeline as UploadDocument but reading
// from a local path. The source is copied into the upload directory first
// so stored documents always have a retained original.
func (s *FileService) IngestFile(ctx context.Context, noteID, path string) (*types.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	processor, ok := s.processors[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	stored, err := utils.CopyFileWithTimestamp(path, s.uploadDir)
	if err != nil {
		return nil, err
	}

	extracted, err := processor.Extract(ctx, stored)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}

	doc := &types.Document{
		ID:        uuid.NewString(),
		NoteID:    noteID,
		Name:      filepath.Base(path),
		MimeType:  extracted.MimeType,
		Text:      extracted.Text,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.notes.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileService) saveUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	filename := fmt.Sprintf("%s_%d%s", sanitizeFilename(base), time.Now().Unix(), ext)

	path := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/repository"
	"github.com/minhtran-dev/studynotes-be/types"
)

// StudyContentService sits between the orchestrator and the store. It
// enforces the one write-side policy the store itself does not: a summary,
// once generated, is never silently regenerated or overwritten.
type StudyContentService struct {
	repo   repository.StudyContentRepo
	logger *logrus.Entry
}

func NewStudyContentService(repo repository.StudyContentRepo) *StudyContentService {
	return &StudyContentService{
		repo:   repo,
		logger: logrus.WithField("service", "study_content"),
	}
}

func (s *StudyContentService) Get(ctx context.Context, noteID string) (*types.StudyContent, error) {
	return s.repo.Get(ctx, noteID)
}

// HasSummary reports whether a summary is already stored for the note.
func (s *StudyContentService) HasSummary(ctx context.Context, noteID string) (bool, error) {
	existing, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return false, err
	}
	return existing != nil && existing.Summary != "", nil
}

// Save applies a partial update. A summary field in the update is dropped
// when one is already stored.
func (s *StudyContentService) Save(ctx context.Context, noteID string, update types.StudyContentUpdate) error {
	if update.Summary != nil {
		has, err := s.HasSummary(ctx, noteID)
		if err != nil {
			return err
		}
		if has {
			s.logger.WithField("note_id", noteID).Info("summary already present, keeping stored version")
			update.Summary = nil
		}
	}
	return s.repo.Upsert(ctx, noteID, update)
}

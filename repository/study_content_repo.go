package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/minhtran-dev/studynotes-be/types"
)

type StudyContentRepo interface {
	Get(ctx context.Context, noteID string) (*types.StudyContent, error)
	Upsert(ctx context.Context, noteID string, update types.StudyContentUpdate) error
}

type studyContentRepo struct {
	collection *mongo.Collection
}

func NewStudyContentRepo(collection *mongo.Collection) StudyContentRepo {
	return &studyContentRepo{collection: collection}
}

// Get returns nil without error when no study content exists yet.
func (r *studyContentRepo) Get(ctx context.Context, noteID string) (*types.StudyContent, error) {
	var content types.StudyContent
	err := r.collection.FindOne(ctx, bson.M{"_id": noteID}).Decode(&content)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Upsert writes only the fields present in the update. Absent fields never
// touch stored values, so one kind failing or being skipped cannot wipe
// out previously generated content.
func (r *studyContentRepo) Upsert(ctx context.Context, noteID string, update types.StudyContentUpdate) error {
	set := bson.M{}
	if update.Summary != nil {
		set["summary"] = *update.Summary
	}
	if update.Flashcards != nil {
		set["flashcards"] = *update.Flashcards
	}
	if update.QuizQuestions != nil {
		set["quiz_questions"] = *update.QuizQuestions
	}
	if update.Exercises != nil {
		set["exercises"] = *update.Exercises
	}
	if update.Topics != nil {
		set["topics"] = *update.Topics
	}
	if len(set) == 0 {
		return nil
	}
	set["updated_at"] = time.Now().Unix()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{"$set": set},
		options.UpdateOne().SetUpsert(true))
	return err
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/minhtran-dev/studynotes-be/types"
)

type NoteRepo interface {
	CreateNote(ctx context.Context, note *types.Note) error
	GetNote(ctx context.Context, id string) (*types.Note, error)
	UpdateNote(ctx context.Context, note *types.Note) error
	DeleteNote(ctx context.Context, id string) error

	CreateDocument(ctx context.Context, doc *types.Document) error
	ListDocuments(ctx context.Context, noteID string) ([]types.Document, error)
}

type noteRepo struct {
	notes     *mongo.Collection
	documents *mongo.Collection
}

func NewNoteRepo(notes, documents *mongo.Collection) NoteRepo {
	return &noteRepo{
		notes:     notes,
		documents: documents,
	}
}

func (r *noteRepo) CreateNote(ctx context.Context, note *types.Note) error {
	_, err := r.notes.InsertOne(ctx, note)
	return err
}

func (r *noteRepo) GetNote(ctx context.Context, id string) (*types.Note, error) {
	var note types.Note
	err := r.notes.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepo) UpdateNote(ctx context.Context, note *types.Note) error {
	_, err := r.notes.ReplaceOne(ctx, bson.M{"_id": note.ID}, note)
	return err
}

func (r *noteRepo) DeleteNote(ctx context.Context, id string) error {
	if _, err := r.documents.DeleteMany(ctx, bson.M{"note_id": id}); err != nil {
		return err
	}
	_, err := r.notes.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *noteRepo) CreateDocument(ctx context.Context, doc *types.Document) error {
	_, err := r.documents.InsertOne(ctx, doc)
	return err
}

func (r *noteRepo) ListDocuments(ctx context.Context, noteID string) ([]types.Document, error) {
	// Upload order matters downstream: the balancer resolves rounding in
	// document order.
	cursor, err := r.documents.Find(ctx, bson.M{"note_id": noteID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []types.Document
	for cursor.Next(ctx) {
		var doc types.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, cursor.Err()
}

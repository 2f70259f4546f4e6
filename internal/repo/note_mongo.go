package repo

import (
	"Scribz/internal/model"
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoNoteRepo struct {
	coll *mongo.Collection
}

// NewMongoNoteRepository создаёт реализацию NoteRepository поверх MongoDB.
func NewMongoNoteRepository(db *mongo.Database) NoteRepository {
	return &mongoNoteRepo{coll: db.Collection(notesCollection)}
}

func (r *mongoNoteRepo) List(ctx context.Context, userID string, q NoteQuery) ([]model.Note, error) {
	filter := bson.M{"user_id": userID}
	switch q.Filter {
	case model.FilterFavorites:
		filter["is_favorite"] = true
		filter["is_trashed"] = false
	case model.FilterTrash:
		filter["is_trashed"] = true
	default:
		filter["is_trashed"] = false
	}
	if q.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	notes := make([]model.Note, 0)
	if err := cur.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func (r *mongoNoteRepo) Create(ctx context.Context, note *model.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = mongoNow()
	}
	note.UpdatedAt = note.CreatedAt
	if _, err := r.coll.InsertOne(ctx, note); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *mongoNoteRepo) GetByID(ctx context.Context, userID, id string) (*model.Note, error) {
	var n model.Note
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&n); err != nil {
		return nil, mongoNotFound(err)
	}
	return &n, nil
}

func (r *mongoNoteRepo) Update(ctx context.Context, userID, id string, patch NotePatch) (*model.Note, error) {
	set := bson.M{"updated_at": mongoNow()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}
	if patch.IsFavorite != nil {
		set["is_favorite"] = *patch.IsFavorite
	}
	return r.findAndUpdate(ctx, userID, id, bson.M{"$set": set})
}

func (r *mongoNoteRepo) Toggle(ctx context.Context, userID, id string, flag NoteFlag) (*model.Note, error) {
	if !flag.valid() {
		return nil, fmt.Errorf("unknown note flag %q", flag)
	}
	field := string(flag)
	// update-pipeline: инверсия выполняется на сервере в одном документе
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: field, Value: bson.D{{Key: "$not", Value: bson.A{"$" + field}}}},
			{Key: "updated_at", Value: mongoNow()},
		}}},
	}
	return r.findAndUpdate(ctx, userID, id, update)
}

func (r *mongoNoteRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoNoteRepo) findAndUpdate(ctx context.Context, userID, id string, update any) (*model.Note, error) {
	var n model.Note
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		return nil, mongoNotFound(err)
	}
	return &n, nil
}

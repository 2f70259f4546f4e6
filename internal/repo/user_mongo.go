package repo

import (
	"Scribz/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection = "users"
	notesCollection = "notes"
)

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepository создаёт реализацию UserRepository поверх MongoDB.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepo{coll: db.Collection(usersCollection)}
}

func (r *mongoUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = mongoNow()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, mongoNotFound(err)
	}
	return &u, nil
}

// EnsureMongoIndexes создаёт индексы коллекций (идемпотентно).
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = db.Collection(notesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_trashed", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_favorite", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create notes indexes: %w", err)
	}
	return nil
}

func mongoNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("query: %w", err)
}

// mongoNow — BSON datetime хранит миллисекунды.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

package repo

import (
	"Scribz/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const defaultMongoDatabase = "scribz"

// Store bundles the repositories of one persistence backend.
type Store struct {
	Users UserRepository
	Notes NoteRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Open picks the backend by DSN: mongodb:// and mongodb+srv:// go to MongoDB,
// postgres:// (or a key=value DSN with host=) to PostgreSQL, anything else is a SQLite DSN.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("empty database DSN")
	}
	if isMongoDSN(dsn) {
		return openMongo(ctx, dsn)
	}
	db, err := InitDB(dsn)
	if err != nil {
		return nil, err
	}
	return NewGormStore(db)
}

// NewGormStore wraps an initialized *gorm.DB.
func NewGormStore(db *gorm.DB) (*Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return &Store{
		Users: NewUserRepository(db),
		Notes: NewNoteRepository(db),
		ping:  sqlDB.PingContext,
		close: func(context.Context) error { return sqlDB.Close() },
	}, nil
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend connections.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// InitDB открывает реляционную БД и применяет миграции моделей.
func InitDB(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	sqlite := !isPostgresDSN(dsn)
	if sqlite {
		dialector = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if sqlite {
		// SQLite допускает одного писателя; один коннект убирает SQLITE_BUSY
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Note{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

func openMongo(ctx context.Context, dsn string) (*Store, error) {
	cs, err := connstring.ParseAndValidate(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mongodb uri: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	db := client.Database(dbName)
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{
		Users: NewMongoUserRepository(db),
		Notes: NewMongoNoteRepository(db),
		ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close: client.Disconnect,
	}, nil
}

func isMongoDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "mongodb://") || strings.HasPrefix(dsn, "mongodb+srv://")
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

package repo

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newTestDB инициализирует отдельную in-memory SQLite (modernc.org/sqlite) на каждый тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to init sqlite (modernc): %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

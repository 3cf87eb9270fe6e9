package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/campuspocket/campuspocket/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(Config{
		Path:        dbPath,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "campuspocket.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	}()

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	if db.Path() != dbPath {
		t.Errorf("Path() = %v, want %v", db.Path(), dbPath)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dirs", "campuspocket.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("nested directories were not created")
	}
}

func TestNew_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "campuspocket.db")

	db1, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("first New() error = %v", err)
	}
	if err := db1.Create(&models.Field{FieldID: "eng", Title: "Engineering"}).Error; err != nil {
		t.Fatalf("create field: %v", err)
	}
	if err := db1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Re-opening must not drop existing data
	db2, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	defer func() { _ = db2.Close() }()

	count, err := db2.GetFieldsCount()
	if err != nil {
		t.Fatalf("GetFieldsCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("GetFieldsCount() = %d after reopen, want 1", count)
	}
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	db := testDB(t)

	err := db.Transaction(func(tx *DB) error {
		if err := tx.Create(&models.Field{FieldID: "eng", Title: "Engineering"}).Error; err != nil {
			return err
		}
		return os.ErrInvalid
	})
	if err == nil {
		t.Fatal("Transaction() should propagate callback error")
	}

	count, err := db.GetFieldsCount()
	if err != nil {
		t.Fatalf("GetFieldsCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("GetFieldsCount() = %d after rollback, want 0", count)
	}
}

func TestGetStats(t *testing.T) {
	db := testDB(t)

	if err := db.Create(&models.Field{FieldID: "eng", Title: "Engineering"}).Error; err != nil {
		t.Fatalf("create field: %v", err)
	}
	if err := db.Create(&models.Post{PostID: "p1", Title: "Hello", AuthorID: "u1"}).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.Fields != 1 {
		t.Errorf("stats.Fields = %d, want 1", stats.Fields)
	}
	if stats.Posts != 1 {
		t.Errorf("stats.Posts = %d, want 1", stats.Posts)
	}
	if stats.SignedIn {
		t.Error("stats.SignedIn = true with no session")
	}
	if stats.CacheSizeBytes == 0 {
		t.Error("stats.CacheSizeBytes = 0, want > 0")
	}
}

func TestGetOrCreateTrackingID_Persists(t *testing.T) {
	db := testDB(t)

	first := db.GetOrCreateTrackingID()
	if first == "" {
		t.Fatal("GetOrCreateTrackingID() returned empty string")
	}

	second := db.GetOrCreateTrackingID()
	if second != first {
		t.Errorf("tracking ID changed between calls: %q vs %q", first, second)
	}
}

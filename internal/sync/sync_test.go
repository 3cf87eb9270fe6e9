package sync

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspocket/campuspocket/internal/api"
	"github.com/campuspocket/campuspocket/internal/db"
	"github.com/campuspocket/campuspocket/internal/log"
	"github.com/campuspocket/campuspocket/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// fakeFetcher serves blobs from a map; unknown URLs fail.
type fakeFetcher struct {
	blobs map[string][]byte
	calls int
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.calls++
	if data, ok := f.blobs[url]; ok {
		return data, nil
	}
	return nil, errors.New("unreachable")
}

func fieldsPayload() *api.FieldsResponse {
	return &api.FieldsResponse{
		Success: true,
		Message: "ok",
		Count:   1,
		Fields: []api.Field{{
			MongoID:       "m-f1",
			ID:            "engineering",
			Title:         "Computer Engineering",
			Icon:          "cpu",
			Color:         "#1565c0",
			Description:   "Hardware and software systems",
			ProgramsCount: 1,
			TotalCourses:  1,
			Programs: []api.Program{{
				MongoID:     "prog-1",
				Name:        "Software Engineering",
				Duration:    "4 years",
				Level:       []string{"HND", "Professional Degree"},
				Description: "Build software at scale",
				CareerPaths: []string{"A", "B", "C"},
				Images:      []string{"https://cdn.example.com/se1.png", "https://cdn.example.com/se2.png"},
				Courses: []api.Course{{
					MongoID:     "m-c1",
					ID:          "cs101",
					Title:       "Intro to Programming",
					Category:    "core",
					Instructor:  "Dr. Mensah",
					Duration:    "12 weeks",
					Level:       "100",
					Rating:      4.5,
					Students:    240,
					Image:       "https://cdn.example.com/cs101.png",
					Description: "First programming course",
					Field:       "Computer Engineering",
				}},
			}},
		}},
	}
}

func allBlobs() map[string][]byte {
	return map[string][]byte{
		"https://cdn.example.com/se1.png":   {1, 1},
		"https://cdn.example.com/se2.png":   {2, 2},
		"https://cdn.example.com/cs101.png": {3, 3},
	}
}

func TestSaveFields_FullCycle(t *testing.T) {
	database := testDB(t)
	writer := NewWriter(database, &fakeFetcher{blobs: allBlobs()})

	require.NoError(t, writer.SaveFields(context.Background(), fieldsPayload()))

	count, err := database.GetFieldsCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	fields, err := database.GetAllFields()
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Len(t, fields[0].Programs, 1)

	program := fields[0].Programs[0]
	assert.Len(t, program.Courses, 1)
	assert.Len(t, program.Images, 2)
	assert.Equal(t, "https://cdn.example.com/cs101.png", program.Courses[0].Image)

	// Serialized arrays survive the round-trip intact
	assert.Equal(t, models.StringList{"HND", "Professional Degree"}, program.Levels)
	assert.Equal(t, models.StringList{"A", "B", "C"}, program.CareerPaths)

	// Blobs retrievable through the separate accessor
	blob, err := database.GetFieldImageBlob("prog-1", models.ReferenceTypeProgram)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1}, blob)

	blob, err = database.GetFieldImageBlob("cs101", models.ReferenceTypeCourse)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 3}, blob)
}

func TestSaveFields_Idempotent(t *testing.T) {
	database := testDB(t)
	writer := NewWriter(database, &fakeFetcher{blobs: allBlobs()})

	require.NoError(t, writer.SaveFields(context.Background(), fieldsPayload()))
	first, err := database.GetAllFields()
	require.NoError(t, err)

	require.NoError(t, writer.SaveFields(context.Background(), fieldsPayload()))
	second, err := database.GetAllFields()
	require.NoError(t, err)

	// Internal row ids are excluded from JSON, so the serialized trees
	// must match exactly
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))

	count, err := database.GetFieldsCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var images int64
	require.NoError(t, database.Model(&models.FieldImage{}).Count(&images).Error)
	assert.Equal(t, int64(3), images)
}

func TestSaveFields_AtomicRollback(t *testing.T) {
	database := testDB(t)
	writer := NewWriter(database, nil)

	seed := &api.FieldsResponse{
		Success: true,
		Fields: []api.Field{
			{ID: "a", Title: "A"},
			{ID: "b", Title: "B"},
		},
	}
	require.NoError(t, writer.SaveFields(context.Background(), seed))

	// Third of five duplicates the first's business key, forcing a unique
	// constraint failure mid-batch
	bad := &api.FieldsResponse{
		Success: true,
		Fields: []api.Field{
			{ID: "c", Title: "C"},
			{ID: "d", Title: "D"},
			{ID: "c", Title: "C again"},
			{ID: "e", Title: "E"},
			{ID: "f", Title: "F"},
		},
	}
	err := writer.SaveFields(context.Background(), bad)
	require.Error(t, err)

	// Full rollback: the pre-sync dataset is still intact, not 2 new rows
	count, err := database.GetFieldsCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	fields, err := database.GetAllFields()
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "A", fields[0].Title)
	assert.Equal(t, "B", fields[1].Title)
}

func TestSaveFields_ImageFailureIsolation(t *testing.T) {
	database := testDB(t)
	// Fetcher knows no URLs: every download fails
	fetcher := &fakeFetcher{blobs: map[string][]byte{}}
	writer := NewWriter(database, fetcher)

	require.NoError(t, writer.SaveFields(context.Background(), fieldsPayload()))
	assert.Equal(t, 3, fetcher.calls)

	fields, err := database.GetAllFields()
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Len(t, fields[0].Programs, 1)

	// Text data fully populated, image arrays empty
	program := fields[0].Programs[0]
	assert.Equal(t, "Software Engineering", program.Name)
	assert.Equal(t, models.StringList{"HND", "Professional Degree"}, program.Levels)
	assert.Empty(t, program.Images)
	require.Len(t, program.Courses, 1)
	assert.Equal(t, "Intro to Programming", program.Courses[0].Title)
	assert.Empty(t, program.Courses[0].Image)

	blob, err := database.GetFieldImageBlob("prog-1", models.ReferenceTypeProgram)
	require.NoError(t, err)
	assert.Nil(t, blob)
}

func TestSaveFields_SkipLogCarriesCause(t *testing.T) {
	logDir := t.TempDir()
	require.NoError(t, log.Init(logDir))
	t.Cleanup(func() { _ = log.Close() })

	database := testDB(t)
	// Fetcher knows no URLs: every download fails with "unreachable"
	writer := NewWriter(database, &fakeFetcher{blobs: map[string][]byte{}})
	require.NoError(t, writer.SaveFields(context.Background(), fieldsPayload()))

	content, err := os.ReadFile(filepath.Join(logDir, "campuspocket.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "skipping program image")
	assert.Contains(t, string(content), "unreachable")
}

func TestSaveFields_InvalidEnvelope(t *testing.T) {
	database := testDB(t)
	writer := NewWriter(database, nil)

	tests := []struct {
		name string
		resp *api.FieldsResponse
	}{
		{"nil response", nil},
		{"success false", &api.FieldsResponse{Success: false, Fields: []api.Field{}}},
		{"nil fields", &api.FieldsResponse{Success: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writer.SaveFields(context.Background(), tt.resp)
			require.Error(t, err)
			assert.ErrorIs(t, err, db.ErrInvalidFormat)
		})
	}

	// Nothing was written
	count, err := database.GetFieldsCount()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSaveFields_ReplacesPreviousDataset(t *testing.T) {
	database := testDB(t)
	writer := NewWriter(database, &fakeFetcher{blobs: allBlobs()})

	require.NoError(t, writer.SaveFields(context.Background(), fieldsPayload()))

	replacement := &api.FieldsResponse{
		Success: true,
		Fields:  []api.Field{{ID: "arts", Title: "Arts"}},
	}
	require.NoError(t, writer.SaveFields(context.Background(), replacement))

	fields, err := database.GetAllFields()
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "Arts", fields[0].Title)

	// Old images cleared with their parents
	var images int64
	require.NoError(t, database.Model(&models.FieldImage{}).Count(&images).Error)
	assert.Equal(t, int64(0), images)
}

func TestSaveFields_Cancelled(t *testing.T) {
	database := testDB(t)
	writer := NewWriter(database, nil)

	seed := &api.FieldsResponse{Success: true, Fields: []api.Field{{ID: "a", Title: "A"}}}
	require.NoError(t, writer.SaveFields(context.Background(), seed))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := writer.SaveFields(ctx, fieldsPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// Rolled back, never half-applied: the old dataset survives
	fields, err := database.GetAllFields()
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "A", fields[0].Title)
}

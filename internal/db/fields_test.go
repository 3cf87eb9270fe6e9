package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspocket/campuspocket/internal/models"
)

// seedFieldsDomain inserts a small fields hierarchy directly through GORM.
func seedFieldsDomain(t *testing.T, db *DB) {
	t.Helper()

	fields := []models.Field{
		{FieldID: "mgmt", MongoID: "m-1", Title: "Management", Description: "Business administration"},
		{FieldID: "eng", MongoID: "m-2", Title: "Computer Engineering", Description: "Hardware and software"},
	}
	for i := range fields {
		require.NoError(t, db.Create(&fields[i]).Error)
	}

	program := models.Program{
		FieldID:     "eng",
		ServerID:    "prog-1",
		Name:        "Software Engineering",
		Duration:    "4 years",
		Levels:      models.StringList{"HND", "Professional Degree"},
		Description: "Build software",
		CareerPaths: models.StringList{"A", "B", "C"},
	}
	require.NoError(t, db.Create(&program).Error)

	course := models.Course{
		ProgramID:  program.ID,
		CourseID:   "cs101",
		MongoID:    "m-3",
		Title:      "Intro to Programming",
		Category:   "core",
		Instructor: "Dr. Mensah",
		Rating:     4.5,
		Students:   240,
		FieldLabel: "Computer Engineering",
	}
	require.NoError(t, db.Create(&course).Error)

	images := []models.FieldImage{
		{ReferenceID: "prog-1", ReferenceType: models.ReferenceTypeProgram, URL: "https://cdn.example.com/se1.png", Data: []byte{1, 2}},
		{ReferenceID: "prog-1", ReferenceType: models.ReferenceTypeProgram, URL: "https://cdn.example.com/se2.png", Data: []byte{3, 4}},
		{ReferenceID: "cs101", ReferenceType: models.ReferenceTypeCourse, URL: "https://cdn.example.com/cs101.png", Data: []byte{5, 6}},
	}
	for i := range images {
		require.NoError(t, db.Create(&images[i]).Error)
	}
}

func TestGetAllFields_Empty(t *testing.T) {
	db := testDB(t)

	fields, err := db.GetAllFields()
	require.NoError(t, err)
	assert.NotNil(t, fields)
	assert.Empty(t, fields)
}

func TestGetAllFields_ReconstructsHierarchy(t *testing.T) {
	db := testDB(t)
	seedFieldsDomain(t, db)

	fields, err := db.GetAllFields()
	require.NoError(t, err)
	require.Len(t, fields, 2)

	// Ordered by title ascending
	assert.Equal(t, "Computer Engineering", fields[0].Title)
	assert.Equal(t, "Management", fields[1].Title)

	require.Len(t, fields[0].Programs, 1)
	program := fields[0].Programs[0]
	assert.Equal(t, "Software Engineering", program.Name)
	assert.Equal(t, models.StringList{"HND", "Professional Degree"}, program.Levels)
	assert.Equal(t, models.StringList{"A", "B", "C"}, program.CareerPaths)

	// Image URLs in insertion order, no blobs
	assert.Equal(t, []string{"https://cdn.example.com/se1.png", "https://cdn.example.com/se2.png"}, program.Images)

	require.Len(t, program.Courses, 1)
	course := program.Courses[0]
	assert.Equal(t, "Intro to Programming", course.Title)
	assert.Equal(t, 4.5, course.Rating)
	assert.Equal(t, "https://cdn.example.com/cs101.png", course.Image)

	// Field with no programs gets an empty, non-nil slice semantics
	assert.Empty(t, fields[1].Programs)
}

func TestGetAllFields_ProgramWithoutImages(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.Field{FieldID: "arts", Title: "Arts"}).Error)
	require.NoError(t, db.Create(&models.Program{FieldID: "arts", ServerID: "p9", Name: "Fine Art"}).Error)

	fields, err := db.GetAllFields()
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Len(t, fields[0].Programs, 1)
	assert.NotNil(t, fields[0].Programs[0].Images)
	assert.Empty(t, fields[0].Programs[0].Images)
}

func TestSearchFields(t *testing.T) {
	db := testDB(t)
	seedFieldsDomain(t, db)

	results, err := db.SearchFields("comp")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Computer Engineering", results[0].Title)
	// Lightweight shells: programs not loaded
	assert.Empty(t, results[0].Programs)

	// Case-insensitive, matches description too
	results, err = db.SearchFields("BUSINESS")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Management", results[0].Title)

	// No match returns empty list, not error
	results, err = db.SearchFields("xyz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchFields_WildcardsAreLiteral(t *testing.T) {
	db := testDB(t)
	seedFieldsDomain(t, db)
	require.NoError(t, db.Create(&models.Field{FieldID: "stats", Title: "Statistics", Description: "100% applied_methods"}).Error)

	// "_" must not act as a single-character wildcard against "Computer"
	results, err := db.SearchFields("comp_ter")
	require.NoError(t, err)
	assert.Empty(t, results)

	// "%" and "_" still match their literal occurrences
	results, err = db.SearchFields("100%")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Statistics", results[0].Title)

	results, err = db.SearchFields("applied_methods")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Statistics", results[0].Title)
}

func TestGetFieldImageBlob(t *testing.T) {
	db := testDB(t)
	seedFieldsDomain(t, db)

	blob, err := db.GetFieldImageBlob("cs101", models.ReferenceTypeCourse)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6}, blob)

	// First matching row wins for multi-image references
	blob, err = db.GetFieldImageBlob("prog-1", models.ReferenceTypeProgram)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, blob)
}

func TestGetFieldImageBlob_Miss(t *testing.T) {
	db := testDB(t)

	blob, err := db.GetFieldImageBlob("nonexistent-id", models.ReferenceTypeCourse)
	require.NoError(t, err)
	assert.Nil(t, blob)
}

func TestGetFieldsCount(t *testing.T) {
	db := testDB(t)

	count, err := db.GetFieldsCount()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	seedFieldsDomain(t, db)

	count, err = db.GetFieldsCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDeleteAllFields(t *testing.T) {
	db := testDB(t)
	seedFieldsDomain(t, db)

	require.NoError(t, db.DeleteAllFields())

	count, err := db.GetFieldsCount()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Children gone too
	var programs int64
	require.NoError(t, db.Model(&models.Program{}).Count(&programs).Error)
	assert.Equal(t, int64(0), programs)

	var images int64
	require.NoError(t, db.Model(&models.FieldImage{}).Count(&images).Error)
	assert.Equal(t, int64(0), images)

	// Wiping an empty domain is fine
	require.NoError(t, db.DeleteAllFields())
}

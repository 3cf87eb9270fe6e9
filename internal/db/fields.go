package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campuspocket/campuspocket/internal/models"
)

// fieldImageRef is the blob-less projection of a field_images row used when
// reconstructing read results.
type fieldImageRef struct {
	ID            uint
	ReferenceID   string
	ReferenceType string
	URL           string
}

// GetAllFields reconstructs the full nested fields hierarchy from the cache:
// fields ordered by title, programs by name, courses by title, image URLs by
// insertion order. Image blobs are never loaded here; use GetFieldImageBlob.
// Returns an empty slice when nothing is cached.
func (db *DB) GetAllFields() ([]models.Field, error) {
	var fields []models.Field
	err := db.
		Preload("Programs", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("programs.name ASC")
		}).
		Preload("Programs.Courses", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("courses.title ASC")
		}).
		Order("title ASC").
		Find(&fields).Error
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}

	if len(fields) == 0 {
		return []models.Field{}, nil
	}

	programImages, courseImages, err := db.loadFieldImageRefs()
	if err != nil {
		return nil, err
	}

	for i := range fields {
		for j := range fields[i].Programs {
			program := &fields[i].Programs[j]
			program.Images = programImages[program.ServerID]
			if program.Images == nil {
				program.Images = []string{}
			}
			for k := range program.Courses {
				course := &program.Courses[k]
				course.Image = courseImages[course.CourseID]
			}
		}
	}

	return fields, nil
}

// loadFieldImageRefs loads all stored image URLs in one pass, keyed by
// reference id. Course images keep only the first stored URL.
func (db *DB) loadFieldImageRefs() (map[string][]string, map[string]string, error) {
	var refs []fieldImageRef
	err := db.Model(&models.FieldImage{}).
		Select("id", "reference_id", "reference_type", "url").
		Order("id ASC").
		Find(&refs).Error
	if err != nil {
		return nil, nil, fmt.Errorf("load field images: %w", err)
	}

	programImages := make(map[string][]string)
	courseImages := make(map[string]string)
	for _, ref := range refs {
		switch ref.ReferenceType {
		case models.ReferenceTypeProgram:
			programImages[ref.ReferenceID] = append(programImages[ref.ReferenceID], ref.URL)
		case models.ReferenceTypeCourse:
			if _, ok := courseImages[ref.ReferenceID]; !ok {
				courseImages[ref.ReferenceID] = ref.URL
			}
		}
	}
	return programImages, courseImages, nil
}

// escapeLike escapes LIKE wildcards so user queries match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SearchFields returns fields whose title or description contains the query
// as a literal substring, case-insensitively. Results are lightweight
// shells: programs are not loaded. Callers needing full detail call
// GetAllFields and filter.
func (db *DB) SearchFields(query string) ([]models.Field, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var fields []models.Field
	err := db.
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("title ASC").
		Find(&fields).Error
	if err != nil {
		return nil, fmt.Errorf("search fields: %w", err)
	}

	if fields == nil {
		fields = []models.Field{}
	}
	return fields, nil
}

// GetFieldImageBlob returns the first stored blob for the given reference,
// or (nil, nil) when no image is cached for it. Errors are storage faults
// only; absence is not an error.
func (db *DB) GetFieldImageBlob(referenceID, referenceType string) ([]byte, error) {
	var image models.FieldImage
	err := db.
		Where("reference_id = ? AND reference_type = ?", referenceID, referenceType).
		Order("id ASC").
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load field image blob: %w", err)
	}
	return image.Data, nil
}

// GetFieldsCount returns the number of cached fields.
func (db *DB) GetFieldsCount() (int64, error) {
	var count int64
	if err := db.Model(&models.Field{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count fields: %w", err)
	}
	return count, nil
}

// DeleteAllFields wipes the entire fields domain in one transaction.
func (db *DB) DeleteAllFields() error {
	return db.Transaction(func(tx *DB) error {
		return tx.ClearFieldsDomain()
	})
}

// ClearFieldsDomain deletes all rows from the four field-domain tables in
// child-to-parent order. It runs in the caller's transaction scope; use
// DeleteAllFields for a standalone wipe.
func (db *DB) ClearFieldsDomain() error {
	if err := db.Where("1 = 1").Delete(&models.FieldImage{}).Error; err != nil {
		return fmt.Errorf("clear field images: %w", err)
	}
	if err := db.Where("1 = 1").Delete(&models.Course{}).Error; err != nil {
		return fmt.Errorf("clear courses: %w", err)
	}
	if err := db.Where("1 = 1").Delete(&models.Program{}).Error; err != nil {
		return fmt.Errorf("clear programs: %w", err)
	}
	if err := db.Where("1 = 1").Delete(&models.Field{}).Error; err != nil {
		return fmt.Errorf("clear fields: %w", err)
	}
	return nil
}

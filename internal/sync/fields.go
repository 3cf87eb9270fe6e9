package sync

import (
	"context"
	"fmt"

	"github.com/campuspocket/campuspocket/internal/api"
	"github.com/campuspocket/campuspocket/internal/db"
	"github.com/campuspocket/campuspocket/internal/log"
	"github.com/campuspocket/campuspocket/internal/models"
)

// SaveFields replaces the entire fields domain with the given server
// response inside one transaction: old rows are cleared child-to-parent,
// new rows inserted parent-to-child, and each referenced image is
// downloaded and stored as it is inserted. A failed image download is
// logged and skipped; a failed structural write rolls back everything,
// leaving the cache in its pre-call state.
func (w *Writer) SaveFields(ctx context.Context, resp *api.FieldsResponse) error {
	if resp == nil || !resp.Success || resp.Fields == nil {
		return fmt.Errorf("fields response: %w", db.ErrInvalidFormat)
	}

	return w.db.Transaction(func(tx *db.DB) error {
		if err := tx.ClearFieldsDomain(); err != nil {
			return err
		}

		for i := range resp.Fields {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := w.insertField(ctx, tx, &resp.Fields[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Writer) insertField(ctx context.Context, tx *db.DB, wire *api.Field) error {
	field := models.Field{
		FieldID:       wire.ID,
		MongoID:       wire.MongoID,
		Title:         wire.Title,
		Icon:          wire.Icon,
		Color:         wire.Color,
		Description:   wire.Description,
		ProgramsCount: wire.ProgramsCount,
		TotalCourses:  wire.TotalCourses,
	}
	if err := tx.Create(&field).Error; err != nil {
		return fmt.Errorf("insert field %s: %w", wire.ID, err)
	}

	for i := range wire.Programs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.insertProgram(ctx, tx, field.FieldID, &wire.Programs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) insertProgram(ctx context.Context, tx *db.DB, fieldID string, wire *api.Program) error {
	program := models.Program{
		FieldID:     fieldID,
		ServerID:    wire.MongoID,
		Name:        wire.Name,
		Duration:    wire.Duration,
		Levels:      models.StringList(wire.Level),
		Description: wire.Description,
		CareerPaths: models.StringList(wire.CareerPaths),
	}
	if err := tx.Create(&program).Error; err != nil {
		return fmt.Errorf("insert program %s: %w", wire.Name, err)
	}

	for _, url := range wire.Images {
		if err := w.storeFieldImage(ctx, tx, program.ServerID, models.ReferenceTypeProgram, url); err != nil {
			return err
		}
	}

	for i := range wire.Courses {
		if err := w.insertCourse(ctx, tx, program.ID, &wire.Courses[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) insertCourse(ctx context.Context, tx *db.DB, programID uint, wire *api.Course) error {
	course := models.Course{
		ProgramID:   programID,
		CourseID:    wire.ID,
		MongoID:     wire.MongoID,
		Title:       wire.Title,
		Category:    wire.Category,
		Instructor:  wire.Instructor,
		Duration:    wire.Duration,
		Level:       wire.Level,
		Rating:      wire.Rating,
		Students:    wire.Students,
		Description: wire.Description,
		FieldLabel:  wire.Field,
	}
	if err := tx.Create(&course).Error; err != nil {
		return fmt.Errorf("insert course %s: %w", wire.ID, err)
	}

	if wire.Image != "" {
		if err := w.storeFieldImage(ctx, tx, course.CourseID, models.ReferenceTypeCourse, wire.Image); err != nil {
			return err
		}
	}
	return nil
}

// storeFieldImage downloads one image and inserts its row. A download
// failure is logged and skipped; only the insert itself is structural.
func (w *Writer) storeFieldImage(ctx context.Context, tx *db.DB, referenceID, referenceType, url string) error {
	data, err := w.download(ctx, url)
	if err != nil {
		log.Printf("sync: skipping %s image %s for %s: %v\n", referenceType, url, referenceID, err)
		return nil
	}

	image := models.FieldImage{
		ReferenceID:   referenceID,
		ReferenceType: referenceType,
		URL:           url,
		Data:          data,
	}
	if err := tx.Create(&image).Error; err != nil {
		return fmt.Errorf("insert %s image for %s: %w", referenceType, referenceID, err)
	}
	return nil
}

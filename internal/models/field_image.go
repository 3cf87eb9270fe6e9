package models

// Reference types for field-domain images.
const (
	ReferenceTypeProgram = "program"
	ReferenceTypeCourse  = "course"
)

// FieldImage stores a downloaded image blob for the fields domain, keyed by
// an arbitrary (reference id, reference type) pair instead of a strict
// foreign key. Programs can own several images (galleries); courses hold at
// most one in practice, though that is not enforced.
type FieldImage struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferenceID   string `gorm:"size:64;index:idx_field_images_ref" json:"reference_id"`
	ReferenceType string `gorm:"size:16;index:idx_field_images_ref" json:"reference_type"`
	URL           string `gorm:"size:1000" json:"url"`
	Data          []byte `gorm:"type:blob" json:"-"`
}

// TableName specifies the table name for GORM.
func (FieldImage) TableName() string {
	return "field_images"
}

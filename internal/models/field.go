// Package models defines the persisted data structures for CampusPocket.
package models

import "time"

// Field is a curriculum field of study as cached from the portal API.
// The whole fields domain is replaced wholesale on every sync, never
// partially updated.
type Field struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	FieldID string `gorm:"uniqueIndex;size:64" json:"id"` // stable business key
	MongoID string `gorm:"size:64" json:"_id"`

	// Display attributes
	Title       string `gorm:"size:255;index" json:"title"`
	Icon        string `gorm:"size:32" json:"icon"` // glyph name rendered by the app
	Color       string `gorm:"size:32" json:"color"`
	Description string `gorm:"size:2000" json:"description"`

	// Denormalized counters supplied by the server
	ProgramsCount int `gorm:"default:0" json:"programsCount"`
	TotalCourses  int `gorm:"default:0" json:"totalCourses"`

	Programs []Program `gorm:"foreignKey:FieldID;references:FieldID" json:"programs"`

	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM.
func (Field) TableName() string {
	return "fields"
}

// Program belongs to exactly one Field, keyed by the field's business key.
type Program struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	FieldID  string `gorm:"size:64;index" json:"-"`
	ServerID string `gorm:"size:64" json:"_id"` // mongo id, used as image reference

	Name        string     `gorm:"size:255" json:"name"`
	Duration    string     `gorm:"size:64" json:"duration"`
	Levels      StringList `gorm:"type:text" json:"level"`
	Description string     `gorm:"size:2000" json:"description"`
	CareerPaths StringList `gorm:"type:text" json:"careerPaths"`

	Courses []Course `gorm:"foreignKey:ProgramID" json:"courses"`

	// Image URLs reconstructed from the field_images table on read.
	// Blobs are fetched separately via GetFieldImageBlob.
	Images []string `gorm:"-" json:"images"`
}

// TableName specifies the table name for GORM.
func (Program) TableName() string {
	return "programs"
}

// Course belongs to exactly one Program.
type Course struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ProgramID uint   `gorm:"index" json:"-"`
	CourseID  string `gorm:"size:64;index" json:"id"` // server id, used as image reference
	MongoID   string `gorm:"size:64" json:"_id"`

	Title       string  `gorm:"size:255" json:"title"`
	Category    string  `gorm:"size:100" json:"category"`
	Instructor  string  `gorm:"size:255" json:"instructor"`
	Duration    string  `gorm:"size:64" json:"duration"`
	Level       string  `gorm:"size:64" json:"level"`
	Rating      float64 `gorm:"default:0" json:"rating"`
	Students    int     `gorm:"default:0" json:"students"`
	Description string  `gorm:"size:2000" json:"description"`
	FieldLabel  string  `gorm:"size:255" json:"field"`

	// Image URL reconstructed from the field_images table on read.
	Image string `gorm:"-" json:"image"`
}

// TableName specifies the table name for GORM.
func (Course) TableName() string {
	return "courses"
}

package models

// Post is a community post as cached from the portal API. The server's
// mongo id is the primary key; re-syncing an existing post replaces it.
type Post struct {
	PostID      string `gorm:"primaryKey;size:64" json:"_id"`
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Author, denormalized from the postedBy envelope
	AuthorID   string `gorm:"size:64;index" json:"author_id"`
	AuthorName string `gorm:"size:255" json:"author_name"`

	// Server-side timestamps, kept as the ISO strings the API returns so
	// they sort lexicographically and survive round-trips untouched.
	CreatedAt string `gorm:"size:64;index" json:"createdAt"`
	UpdatedAt string `gorm:"size:64" json:"updatedAt"`

	// Server version counter (__v)
	Version int `gorm:"default:0" json:"__v"`

	Images []PostImage `gorm:"foreignKey:PostID;references:PostID" json:"images"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// PostImage belongs to exactly one Post and stores the downloaded blob
// alongside its CDN references.
type PostImage struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID   string `gorm:"size:64;index" json:"-"`
	ImageID  string `gorm:"size:64" json:"_id"`
	PublicID string `gorm:"size:255" json:"public_id"`
	URL      string `gorm:"size:1000" json:"url"`
	Data     []byte `gorm:"type:blob" json:"-"`
}

// TableName specifies the table name for GORM.
func (PostImage) TableName() string {
	return "post_images"
}

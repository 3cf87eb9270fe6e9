package models

import "time"

// Session is the single-slot cache for the signed-in user. It is replaced
// wholesale on login and deleted on logout; at most one row exists at a
// time.
type Session struct {
	UserID string `gorm:"primaryKey;size:64" json:"user_id"`
	Email  string `gorm:"uniqueIndex;size:255" json:"email"`
	Name   string `gorm:"size:255" json:"name"`

	// Optional profile picture: remote URL plus the downloaded blob for
	// offline display.
	AvatarURL  string `gorm:"size:1000" json:"avatar_url"`
	AvatarData []byte `gorm:"type:blob" json:"-"`

	// Bearer token for the authenticated session.
	Token string `gorm:"size:2048" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}

package models

import "time"

// AppState holds per-install application state in a single row keyed by
// "default".
type AppState struct {
	ID string `gorm:"primaryKey;size:16" json:"id"`

	// Anonymous telemetry tracking ID, persisted so the same install keeps
	// the same identity across sessions.
	TrackingID string `gorm:"size:64" json:"tracking_id"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (AppState) TableName() string {
	return "app_state"
}

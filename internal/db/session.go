package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campuspocket/campuspocket/internal/models"
)

// SaveSession replaces the single-slot session cache with the given
// session. Any previously signed-in user is removed in the same
// transaction.
func (db *DB) SaveSession(session *models.Session) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		if err := tx.Create(session).Error; err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
}

// GetSession returns the cached session, or (nil, nil) when signed out.
func (db *DB) GetSession() (*models.Session, error) {
	var session models.Session
	err := db.First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes the cached session (logout).
func (db *DB) DeleteSession() error {
	if err := db.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

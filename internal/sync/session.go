package sync

import (
	"context"
	"fmt"

	"github.com/campuspocket/campuspocket/internal/api"
	"github.com/campuspocket/campuspocket/internal/db"
	"github.com/campuspocket/campuspocket/internal/log"
	"github.com/campuspocket/campuspocket/internal/models"
)

// SaveSession replaces the single-slot session cache from a login response.
// The avatar download is best-effort; a signed-in session without an
// offline avatar is still a valid session.
func (w *Writer) SaveSession(ctx context.Context, user api.User, token string) error {
	if user.MongoID == "" || user.Email == "" || token == "" {
		return fmt.Errorf("session: %w", db.ErrInvalidFormat)
	}

	session := models.Session{
		UserID:    user.MongoID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.Avatar,
		Token:     token,
	}

	if user.Avatar != "" {
		if data, err := w.download(ctx, user.Avatar); err == nil {
			session.AvatarData = data
		} else {
			log.Printf("sync: skipping avatar %s for %s: %v\n", user.Avatar, user.MongoID, err)
		}
	}

	return w.db.SaveSession(&session)
}

package sync

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/campuspocket/campuspocket/internal/api"
	"github.com/campuspocket/campuspocket/internal/db"
	"github.com/campuspocket/campuspocket/internal/log"
	"github.com/campuspocket/campuspocket/internal/models"
)

// SavePost caches one post transactionally: the post row is upserted
// (insert-or-replace keyed by the server id), its existing images are
// deleted, and each new image is downloaded and stored best-effort. A
// structural write failure rolls back the whole post.
func (w *Writer) SavePost(ctx context.Context, post api.Post) error {
	if post.MongoID == "" || post.Title == "" || post.PostedBy.MongoID == "" {
		return fmt.Errorf("post %q: %w", post.MongoID, db.ErrInvalidFormat)
	}

	return w.db.Transaction(func(tx *db.DB) error {
		row := models.Post{
			PostID:      post.MongoID,
			Title:       post.Title,
			Description: post.Description,
			AuthorID:    post.PostedBy.MongoID,
			AuthorName:  post.PostedBy.Name,
			CreatedAt:   post.CreatedAt,
			UpdatedAt:   post.UpdatedAt,
			Version:     post.Version,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "description", "author_id", "author_name",
				"created_at", "updated_at", "version",
			}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("upsert post %s: %w", post.MongoID, err)
		}

		if err := tx.Delete(&models.PostImage{}, "post_id = ?", post.MongoID).Error; err != nil {
			return fmt.Errorf("clear post images for %s: %w", post.MongoID, err)
		}

		for _, img := range post.Images {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := w.download(ctx, img.URL)
			if err != nil {
				log.Printf("sync: skipping post image %s for %s: %v\n", img.URL, post.MongoID, err)
				continue
			}

			imageRow := models.PostImage{
				PostID:   post.MongoID,
				ImageID:  img.MongoID,
				PublicID: img.PublicID,
				URL:      img.URL,
				Data:     data,
			}
			if err := tx.Create(&imageRow).Error; err != nil {
				return fmt.Errorf("insert post image %s: %w", img.MongoID, err)
			}
		}
		return nil
	})
}

// SavePosts caches every post in the response, logging and continuing past
// any single post's failure. Saving is not transactional across posts: a
// late failure leaves earlier posts committed. Returns the number of posts
// saved.
func (w *Writer) SavePosts(ctx context.Context, resp *api.PostsResponse) (int, error) {
	if resp == nil || !resp.Success || resp.Posts == nil {
		return 0, fmt.Errorf("posts response: %w", db.ErrInvalidFormat)
	}

	saved := 0
	for _, post := range resp.Posts {
		if err := ctx.Err(); err != nil {
			return saved, err
		}

		if err := w.SavePost(ctx, post); err != nil {
			log.Errorf("sync: save post %s: %v", post.MongoID, err)
			continue
		}
		saved++
	}
	return saved, nil
}

package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campuspocket/campuspocket/internal/models"
)

// preloadPostImages loads post images without their blobs, ordered by
// insertion id.
func preloadPostImages(tx *gorm.DB) *gorm.DB {
	return tx.
		Select("id", "post_id", "image_id", "public_id", "url").
		Order("id ASC")
}

// GetAllPosts returns all cached posts, newest first, with their image
// URLs. Blobs are never loaded here; use GetPostImageBlob. Returns an empty
// slice when nothing is cached.
func (db *DB) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	err := db.
		Preload("Images", preloadPostImages).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// GetPost returns a single cached post with its image URLs, or (nil, nil)
// when no post with that id is cached.
func (db *DB) GetPost(id string) (*models.Post, error) {
	var post models.Post
	err := db.
		Preload("Images", preloadPostImages).
		Where("post_id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return &post, nil
}

// GetPostImageBlob returns the stored blob for one post image, or
// (nil, nil) when absent.
func (db *DB) GetPostImageBlob(postID, imageID string) ([]byte, error) {
	var image models.PostImage
	err := db.
		Where("post_id = ? AND image_id = ?", postID, imageID).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load post image blob: %w", err)
	}
	return image.Data, nil
}

// GetPostsCount returns the number of cached posts.
func (db *DB) GetPostsCount() (int64, error) {
	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// DeletePost removes one post and its images in a transaction.
func (db *DB) DeletePost(id string) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Delete(&models.PostImage{}, "post_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete post images: %w", err)
		}
		if err := tx.Delete(&models.Post{}, "post_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}

// DeleteAllPosts wipes the posts domain in one transaction.
func (db *DB) DeleteAllPosts() error {
	return db.Transaction(func(tx *DB) error {
		return tx.ClearPostsDomain()
	})
}

// ClearPostsDomain deletes all rows from the two post-domain tables in
// child-to-parent order. It runs in the caller's transaction scope.
func (db *DB) ClearPostsDomain() error {
	if err := db.Where("1 = 1").Delete(&models.PostImage{}).Error; err != nil {
		return fmt.Errorf("clear post images: %w", err)
	}
	if err := db.Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	return nil
}

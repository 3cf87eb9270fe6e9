// Package sync writes freshly fetched server payloads into the on-device
// cache. Each domain is replaced wholesale inside one transaction; image
// downloads within that transaction are best-effort and never abort the
// structural write.
package sync

import (
	"context"
	"errors"

	"github.com/campuspocket/campuspocket/internal/db"
)

// BlobGetter downloads a binary resource and returns its complete content.
// Satisfied by *fetch.Fetcher.
type BlobGetter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Writer replaces cached domain data from server responses.
type Writer struct {
	db      *db.DB
	fetcher BlobGetter
}

// NewWriter creates a sync writer. The fetcher is used for image downloads
// inside sync transactions; it may be nil, in which case no images are
// stored.
func NewWriter(database *db.DB, fetcher BlobGetter) *Writer {
	return &Writer{db: database, fetcher: fetcher}
}

// download fetches url. The returned error carries why the blob could not
// be retrieved; callers log it when they skip the image.
func (w *Writer) download(ctx context.Context, url string) ([]byte, error) {
	if w.fetcher == nil {
		return nil, errors.New("image downloads disabled")
	}
	if url == "" {
		return nil, errors.New("empty image url")
	}
	return w.fetcher.Get(ctx, url)
}

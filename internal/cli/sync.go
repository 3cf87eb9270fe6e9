package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/campuspocket/campuspocket/internal/api"
	"github.com/campuspocket/campuspocket/internal/db"
	"github.com/campuspocket/campuspocket/internal/fetch"
	"github.com/campuspocket/campuspocket/internal/log"
	"github.com/campuspocket/campuspocket/internal/models"
	syncpkg "github.com/campuspocket/campuspocket/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync [fields|posts|all]",
	Short: "Refresh the offline cache from the portal",
	Long: `Refresh the offline cache from the portal API.

Replaces the cached dataset for the chosen domain wholesale with the
server's current data, downloading referenced images for offline viewing.
Images that cannot be downloaded are skipped; the text data is still
cached.

Examples:
  campuspocket sync
  campuspocket sync fields
  campuspocket sync posts`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"fields", "posts", "all"},
	RunE:      runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	domain := "all"
	if len(args) == 1 {
		domain = args[0]
	}

	cfg, database, err := openDatabase()
	if err != nil {
		return trackCLIError("sync", err)
	}
	defer func() { _ = database.Close() }()

	client := api.NewClient(cfg.API.BaseURL, sessionToken(database), cfg.API.Timeout)
	fetcher := fetch.New(fetch.Config{
		Retries:   cfg.Fetch.Retries,
		Timeout:   cfg.Fetch.Timeout,
		BaseDelay: cfg.Fetch.BaseDelay,
		RPS:       cfg.Fetch.RPS,
	})
	writer := syncpkg.NewWriter(database, fetcher)

	if domain == "fields" || domain == "all" {
		if err := syncFields(ctx, client, writer, database); err != nil {
			return trackCLIError("sync", err)
		}
	}

	if domain == "posts" || domain == "all" {
		if err := syncPosts(ctx, client, writer, database); err != nil {
			return trackCLIError("sync", err)
		}
	}

	return nil
}

func syncFields(ctx context.Context, client *api.Client, writer *syncpkg.Writer, database *db.DB) error {
	start := time.Now()

	resp, err := client.FetchFields(ctx)
	if err != nil {
		return err
	}

	expected := 0
	for _, field := range resp.Fields {
		for _, program := range field.Programs {
			expected += len(program.Images)
			for _, course := range program.Courses {
				if course.Image != "" {
					expected++
				}
			}
		}
	}

	if err := writer.SaveFields(ctx, resp); err != nil {
		return err
	}

	var stored int64
	if err := database.Model(&models.FieldImage{}).Count(&stored).Error; err != nil {
		log.Errorf("sync: count cached field images: %v", err)
	}

	durationMs := time.Since(start).Milliseconds()
	telemetryClient.TrackFieldsSynced(len(resp.Fields), int(stored), expected-int(stored), durationMs)

	fmt.Printf("Synced %d fields (%d/%d images cached) in %s\n",
		len(resp.Fields), stored, expected, time.Since(start).Round(time.Millisecond))
	return nil
}

func syncPosts(ctx context.Context, client *api.Client, writer *syncpkg.Writer, database *db.DB) error {
	start := time.Now()

	resp, err := client.FetchPosts(ctx)
	if err != nil {
		return err
	}

	saved, err := writer.SavePosts(ctx, resp)
	if err != nil {
		return err
	}

	durationMs := time.Since(start).Milliseconds()
	telemetryClient.TrackPostsSynced(len(resp.Posts), saved, durationMs)

	fmt.Printf("Synced %d/%d posts in %s\n", saved, len(resp.Posts), time.Since(start).Round(time.Millisecond))
	return nil
}

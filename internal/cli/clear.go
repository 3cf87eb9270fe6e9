package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear <fields|posts|all>",
	Short: "Delete cached data for a domain",
	Long: `Delete all cached rows (and image blobs) for a domain. The next
sync repopulates it from the server.

Examples:
  campuspocket clear posts
  campuspocket clear all`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"fields", "posts", "all"},
	RunE:      runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	domain := args[0]
	if domain != "fields" && domain != "posts" && domain != "all" {
		return fmt.Errorf("unknown domain %q (want fields, posts, or all)", domain)
	}

	_, database, err := openDatabase()
	if err != nil {
		return trackCLIError("clear", err)
	}
	defer func() { _ = database.Close() }()

	if domain == "fields" || domain == "all" {
		if err := database.DeleteAllFields(); err != nil {
			return trackCLIError("clear", err)
		}
		telemetryClient.TrackCacheCleared("fields")
		fmt.Println("Cleared cached fields.")
	}

	if domain == "posts" || domain == "all" {
		if err := database.DeleteAllPosts(); err != nil {
			return trackCLIError("clear", err)
		}
		telemetryClient.TrackCacheCleared("posts")
		fmt.Println("Cleared cached posts.")
	}

	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return trackCLIError("stats", err)
	}
	defer func() { _ = database.Close() }()

	stats, err := database.GetStats()
	if err != nil {
		return trackCLIError("stats", err)
	}

	signedIn := "no"
	if stats.SignedIn {
		signedIn = "yes"
	}

	fmt.Printf("Fields:       %d\n", stats.Fields)
	fmt.Printf("Posts:        %d\n", stats.Posts)
	fmt.Printf("Field images: %d\n", stats.FieldImages)
	fmt.Printf("Post images:  %d\n", stats.PostImages)
	fmt.Printf("Signed in:    %s\n", signedIn)
	fmt.Printf("Cache size:   %.1f MB\n", float64(stats.CacheSizeBytes)/(1024*1024))
	fmt.Printf("Database:     %s\n", database.Path())
	return nil
}

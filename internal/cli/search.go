package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search cached fields by title or description",
	Long: `Search the cached curriculum fields by title or description,
case-insensitively.

Examples:
  campuspocket search comp
  campuspocket search "computer engineering"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	_, database, err := openDatabase()
	if err != nil {
		return trackCLIError("search", err)
	}
	defer func() { _ = database.Close() }()

	results, err := database.SearchFields(query)
	if err != nil {
		return trackCLIError("search", err)
	}

	telemetryClient.TrackSearchPerformed(len(results))

	if len(results) == 0 {
		fmt.Printf("No fields match %q.\n", query)
		return nil
	}

	for _, field := range results {
		fmt.Printf("%-30s %s\n", field.Title, field.Description)
	}
	return nil
}

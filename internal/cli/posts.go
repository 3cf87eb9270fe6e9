package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List cached posts",
	Long: `List the community posts currently in the offline cache, newest
first.

Examples:
  campuspocket posts`,
	Args: cobra.NoArgs,
	RunE: runPosts,
}

func runPosts(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return trackCLIError("posts", err)
	}
	defer func() { _ = database.Close() }()

	posts, err := database.GetAllPosts()
	if err != nil {
		return trackCLIError("posts", err)
	}

	if len(posts) == 0 {
		fmt.Println("No posts cached. Run `campuspocket sync posts` first.")
		return nil
	}

	for _, post := range posts {
		fmt.Printf("%-40s by %s  %s  (%d images)\n",
			post.Title, post.AuthorName, post.CreatedAt, len(post.Images))
	}
	return nil
}

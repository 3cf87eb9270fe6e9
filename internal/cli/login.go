package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campuspocket/campuspocket/internal/api"
	"github.com/campuspocket/campuspocket/internal/fetch"
	syncpkg "github.com/campuspocket/campuspocket/internal/sync"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the portal and cache the session",
	Long: `Sign in to the portal. The session (profile, token, avatar) is
cached locally so authenticated syncs work until you log out.

Examples:
  campuspocket login --email ama@example.edu`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "portal account email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reader := bufio.NewReader(os.Stdin)

	email := loginEmail
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return trackCLIError("login", fmt.Errorf("read email: %w", err))
		}
		email = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return trackCLIError("login", fmt.Errorf("read password: %w", err))
	}
	password := strings.TrimSpace(line)

	cfg, database, err := openDatabase()
	if err != nil {
		return trackCLIError("login", err)
	}
	defer func() { _ = database.Close() }()

	client := api.NewClient(cfg.API.BaseURL, "", cfg.API.Timeout)
	resp, err := client.Login(ctx, email, password)
	if err != nil {
		return trackCLIError("login", err)
	}
	if !resp.Success || resp.Token == "" {
		return trackCLIError("login", fmt.Errorf("login rejected: %s", resp.Message))
	}

	fetcher := fetch.New(fetch.Config{
		Retries:   cfg.Fetch.Retries,
		Timeout:   cfg.Fetch.Timeout,
		BaseDelay: cfg.Fetch.BaseDelay,
		RPS:       cfg.Fetch.RPS,
	})
	writer := syncpkg.NewWriter(database, fetcher)

	if err := writer.SaveSession(ctx, resp.User, resp.Token); err != nil {
		return trackCLIError("login", err)
	}

	telemetryClient.TrackLogin(resp.User.Avatar != "")
	fmt.Printf("Signed in as %s <%s>.\n", resp.User.Name, resp.User.Email)
	return nil
}

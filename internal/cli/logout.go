package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the cached session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return trackCLIError("logout", err)
	}
	defer func() { _ = database.Close() }()

	session, err := database.GetSession()
	if err != nil {
		return trackCLIError("logout", err)
	}
	if session == nil {
		fmt.Println("Not signed in.")
		return nil
	}

	if err := database.DeleteSession(); err != nil {
		return trackCLIError("logout", err)
	}

	telemetryClient.TrackLogout()
	fmt.Printf("Signed out %s.\n", session.Email)
	return nil
}

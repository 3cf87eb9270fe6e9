package cli

import (
	"fmt"

	"github.com/campuspocket/campuspocket/internal/config"
	"github.com/campuspocket/campuspocket/internal/db"
)

// openDatabase loads config and opens the cache database. Every command
// goes through here; a failure means the cache is unusable.
func openDatabase() (*config.Config, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	return cfg, database, nil
}

// sessionToken returns the cached bearer token, or empty when signed out.
func sessionToken(database *db.DB) string {
	session, err := database.GetSession()
	if err != nil || session == nil {
		return ""
	}
	return session.Token
}

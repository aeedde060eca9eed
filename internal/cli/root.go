// Package cli defines the cobra command tree for hustlebust.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hustlebust/internal/client"
	"github.com/evcraddock/hustlebust/internal/config"
	"github.com/evcraddock/hustlebust/internal/db"
	"github.com/evcraddock/hustlebust/internal/listing"
	"github.com/evcraddock/hustlebust/internal/mongo"
)

var (
	flagFormat string
	flagStore  string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hb",
		Short:         "Manage rental listings",
		Long:          "A small listings site. Serve the web UI, or list, add, edit and remove listings from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagStore, "store", "", "store URL, overrides MONGO_URL (mongodb://..., sqlite://path, http://host:port)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/hb/config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newShowCmd(),
		newAddCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// configPath returns the --config flag or the default path.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultPath()
}

// loadConfig loads settings and applies the --store override.
func loadConfig() (config.Config, error) {
	path, err := configPath()
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if flagStore != "" {
		cfg.StoreURL = flagStore
	}
	return cfg, nil
}

// openRepository builds the listing repository for a store URL.
// mongodb:// and mongodb+srv:// select MongoDB; sqlite://path or a
// path ending in .db selects SQLite; http:// and https:// talk to a
// running hb server.
func openRepository(ctx context.Context, storeURL string) (listing.Repository, error) {
	switch {
	case strings.HasPrefix(storeURL, "mongodb://"), strings.HasPrefix(storeURL, "mongodb+srv://"):
		client, dbName, err := mongo.Connect(ctx, storeURL)
		if err != nil {
			return nil, err
		}
		return listing.NewMongoRepository(client, dbName), nil

	case strings.HasPrefix(storeURL, "sqlite://"), strings.HasSuffix(storeURL, ".db"):
		path := strings.TrimPrefix(storeURL, "sqlite://")
		if path == "" {
			var err error
			path, err = db.DefaultPath()
			if err != nil {
				return nil, err
			}
		}
		database, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		return listing.NewSQLRepository(database), nil

	case strings.HasPrefix(storeURL, "http://"), strings.HasPrefix(storeURL, "https://"):
		return client.New(storeURL), nil
	}

	return nil, fmt.Errorf("unsupported store URL %q (want mongodb://, mongodb+srv://, sqlite:// or http(s)://)", storeURL)
}

// newRepository loads config and opens the configured repository.
func newRepository(ctx context.Context) (listing.Repository, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openRepository(ctx, cfg.StoreURL)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeRepository closes the repository, logging any error to stderr.
func closeRepository(repo listing.Repository) {
	if err := repo.Close(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing store: %v\n", err)
	}
}

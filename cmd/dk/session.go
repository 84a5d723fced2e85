package main

import (
	"context"
	"os"

	"github.com/jacksmith/dk/internal/api"
	"github.com/jacksmith/dk/internal/logger"
	"github.com/jacksmith/dk/internal/storage"
	"github.com/jacksmith/dk/internal/store"
	"github.com/spf13/cobra"
)

// session is the state of one dk invocation: the discount store and the
// API client behind it.
type session struct {
	storage *storage.Storage
	client  *api.Client
	store   *store.Store
}

// openSession loads configuration and builds the client and store.
func openSession() (*session, error) {
	dir := flagConfigDir
	if dir == "" {
		dir = os.Getenv("DK_CONFIG_DIR")
	}
	if dir == "" {
		var err error
		if dir, err = storage.DefaultDir(); err != nil {
			return nil, err
		}
	}

	s, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	if err := logger.Init(level); err != nil {
		return nil, err
	}

	var opts []api.Option
	if cfg.MaxRetries > 0 {
		opts = append(opts, api.WithRetry(api.DefaultRetryConfig(cfg.MaxRetries)))
	}

	var client *api.Client
	if flagAPIURL != "" {
		// One-off override: not read from or written to settings
		client, err = api.New(flagAPIURL, opts...)
	} else {
		defaultURL := cfg.DefaultAPIURL
		if defaultURL == "" {
			defaultURL = DefaultAPIURL
		}
		client, err = api.New(defaultURL, append(opts, api.WithSettings(s))...)
	}
	if err != nil {
		return nil, err
	}

	return &session{
		storage: s,
		client:  client,
		store:   store.New(client),
	}, nil
}

// commandContext returns the context of cmd, or Background when run
// without one (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kekeqingke/Project-Dashboard/internal/apiclient"
	"github.com/kekeqingke/Project-Dashboard/internal/infrastructure/config"
	"github.com/kekeqingke/Project-Dashboard/pkg/logger"
)

// cli carries the state shared by the subcommands of one invocation.
type cli struct {
	logLevel string
	apiURL   string

	out    io.Writer
	errOut io.Writer
	in     io.Reader

	cfg *config.Config
	log zerolog.Logger
	app *App
}

func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.apiURL != "" {
		cfg.API.BaseURL = c.apiURL
	}
	c.cfg = cfg

	// The console logs JSON in production; every other command talks to a
	// terminal.
	serving := cmd.Name() == "serve"
	opts := logger.Options{Level: cfg.LogLevel, Service: appName}
	if serving && cfg.IsProduction() {
		opts.Output = os.Stdout
	} else {
		opts.Output = c.errOut
		opts.Pretty = true
	}
	c.log = logger.Init(opts)

	app, err := NewApp(ctx, cfg, c.log)
	if err != nil {
		return err
	}
	c.app = app

	if !serving {
		app.client.OnUnauthorized(func(_ context.Context, err *apiclient.APIError) {
			if err.Path == apiclient.TokenPath {
				return
			}
			fmt.Fprintf(c.errOut, "Your session has ended. Run `%s login` to sign in again.\n", appName)
		})
	}
	return nil
}

func (c *cli) teardown(ctx context.Context) error {
	if c.app == nil {
		return nil
	}
	app := c.app
	c.app = nil
	return app.Close(ctx)
}

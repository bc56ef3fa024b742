package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kekeqingke/Project-Dashboard/internal/api"
	"github.com/kekeqingke/Project-Dashboard/internal/apiclient"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local web console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, log := c.app, c.log
			if addr != "" {
				c.cfg.ListenAddr = addr
			}

			state := app.session.Initialize(ctx)
			log.Info().Str("state", string(state)).Msg("session initialized")

			app.client.OnUnauthorized(func(_ context.Context, err *apiclient.APIError) {
				if err.Path == apiclient.TokenPath {
					return
				}
				log.Warn().Str("path", err.Path).Msg("session ended by backend, redirecting to login")
			})

			if app.fileStore != nil && c.cfg.Token.Watch {
				go func() {
					err := app.fileStore.Watch(ctx, 0, log, func(ctx context.Context) {
						app.session.Reload(ctx)
					})
					if err != nil {
						log.Warn().Err(err).Msg("token file watcher stopped")
					}
				}()
			}

			e, err := api.NewRouter(api.Deps{
				Session: app.session,
				Client:  app.client,
				Tokens:  app.tokens,
				Log:     log,
			})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", c.cfg.ListenAddr).Msg("Starting web console")
				if err := e.Start(c.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("Shutting down web console")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("graceful shutdown failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; overrides LISTEN_ADDR")
	return cmd
}

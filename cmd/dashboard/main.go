// Package main provides the dashboard binary: a command-line client and a
// local web console for the property-management backend.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "dashboard"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx := context.Background()
	cli := &cli{out: os.Stdout, errOut: os.Stderr, in: os.Stdin}

	err := rootCmd(cli).ExecuteContext(ctx)
	if closeErr := cli.teardown(ctx); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error: shutdown: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(cli *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Property-management dashboard client",
		Long: `Dashboard talks to the property-management backend on behalf of one user.

The session token is persisted in the configured token store (a file in the
user config directory by default) and attached to every backend request. A
401 from the backend removes it; log in again to continue.

Configuration is read from the environment (API_BASE_URL, TOKEN_STORE, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&cli.apiURL, "api-url", "", "Backend base URL; overrides API_BASE_URL")

	cmd.AddCommand(
		loginCmd(cli),
		logoutCmd(cli),
		whoamiCmd(cli),
		summaryCmd(cli),
		serveCmd(cli),
		&cobra.Command{
			Use:               "version",
			Short:             "Print version information",
			PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

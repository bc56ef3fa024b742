package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

var errNotLoggedIn = errors.New("not logged in")

func loginCmd(c *cli) *cobra.Command {
	var (
		username      string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			if passwordStdin || password == "" {
				line, err := bufio.NewReader(c.in).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			res := c.app.session.Login(cmd.Context(), username, password)
			if !res.Success {
				return errors.New(res.Message)
			}
			snap := c.app.session.Snapshot()
			fmt.Fprintf(c.out, "Logged in as %s (%s)\n", snap.User.Username, snap.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (read from stdin when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func logoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the persisted session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.session.Logout(cmd.Context())
			fmt.Fprintln(c.out, "Logged out")
			return nil
		},
	}
}

func whoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user of the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.app.session.Initialize(cmd.Context()) != domain.StateAuthenticated {
				return errNotLoggedIn
			}
			snap := c.app.session.Snapshot()
			fmt.Fprintf(c.out, "Username: %s\n", snap.User.Username)
			fmt.Fprintf(c.out, "Name:     %s\n", snap.User.Name)
			fmt.Fprintf(c.out, "Role:     %s\n", snap.User.Role)
			if !snap.ExpiresAt.IsZero() {
				fmt.Fprintf(c.out, "Expires:  %s\n", snap.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func summaryCmd(c *cli) *cobra.Command {
	var buildingUnit string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the administrator room summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if c.app.session.Initialize(ctx) != domain.StateAuthenticated {
				return errNotLoggedIn
			}
			if !c.app.session.IsAdmin() {
				return domain.ErrForbidden
			}

			resp, err := c.app.client.Admin.Summary(ctx, buildingUnit)
			if err != nil {
				return err
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, resp.Body, "", "  "); err != nil {
				return fmt.Errorf("format summary: %w", err)
			}
			fmt.Fprintln(c.out, pretty.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&buildingUnit, "building-unit", "", "Only rooms of this building unit")
	return cmd
}

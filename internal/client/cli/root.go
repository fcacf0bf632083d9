// Package cli implements the blogit terminal client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/isdelr/blogit-be/internal/client/api"
	"github.com/isdelr/blogit-be/internal/client/gate"
	"github.com/isdelr/blogit-be/internal/client/session"
	"github.com/spf13/cobra"
)

// app bundles the client-side wiring shared by all commands.
type app struct {
	client   *api.Client
	sessions *session.Controller
	gate     *gate.Gate
}

var (
	serverURL string
	rootApp   *app
)

var rootCmd = &cobra.Command{
	Use:           "blogit",
	Short:         "Terminal client for the BlogIT publishing service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(serverURL)
		if err != nil {
			return err
		}
		rootApp = a
		return nil
	},
}

func newApp(serverURL string) (*app, error) {
	store, err := session.NewFileStore()
	if err != nil {
		return nil, fmt.Errorf("locating token store: %w", err)
	}

	// The API client reads the token through the controller so a logout
	// mid-run immediately stops attaching credentials.
	var sessions *session.Controller
	client := api.New(serverURL, func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	})

	sessions, err = session.NewController(client, store)
	if err != nil {
		return nil, err
	}

	g := gate.New(sessions, func(ctx context.Context) error {
		return errors.New("you must be logged in: run 'blogit login' first")
	})

	return &app{client: client, sessions: sessions, gate: g}, nil
}

// authErr translates an authentication failure on any request into a
// cleared session, per the session contract.
func (a *app) authErr(err error) error {
	if errors.Is(err, api.ErrUnauthenticated) {
		a.sessions.Invalidate()
		return errors.New("session expired: run 'blogit login' again")
	}
	return err
}

// Execute runs the CLI.
func Execute() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the BlogIT server")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

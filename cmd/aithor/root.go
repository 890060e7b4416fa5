package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/EgeUnlu35/aithor/internal/api"
	"github.com/EgeUnlu35/aithor/internal/config"
	"github.com/EgeUnlu35/aithor/internal/home"
	"github.com/EgeUnlu35/aithor/internal/library"
	"github.com/EgeUnlu35/aithor/internal/remote"
	"github.com/EgeUnlu35/aithor/internal/session"
	"github.com/EgeUnlu35/aithor/internal/store"
	"github.com/EgeUnlu35/aithor/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "aithor",
	Short: "E-book reading client with an offline library",
	Long: `Aithor is a reading client for the book-processing API with a local
offline library.

Remote books are uploaded as PDF or ePub, processed server-side, and read
page by page once processing completes. The local library keeps books,
notes, and reading progress on disk, available without a connection.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.aithor/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "aithor home directory (default: ~/.aithor)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// app bundles the per-invocation wiring every command needs: home
// directory, loaded config, and the saved session.
type app struct {
	home    *home.Dir
	manager *config.Manager
	session *session.Session
}

func newApp() (*app, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}

	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}

	sess, err := session.Load(h.TokenPath())
	if err != nil {
		return nil, err
	}

	return &app{home: h, manager: cm, session: sess}, nil
}

func (a *app) config() *config.Config {
	return a.manager.Get()
}

// client builds the remote API client. Any 401 clears the saved token so
// the next command starts unauthenticated instead of retrying a dead one.
func (a *app) client() *remote.Client {
	cfg := a.config()
	return remote.New(remote.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		Session: a.session,
		OnUnauthorized: func() {
			if err := a.session.Clear(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to clear expired token: %v\n", err)
				return
			}
			fmt.Fprintln(os.Stderr, "session expired; saved token cleared, run 'aithor login' to sign in again")
		},
	})
}

// openLibrary opens the local library database. The caller closes the
// returned store.
func (a *app) openLibrary() (*library.Library, *store.Store, error) {
	s, err := store.Open(a.home.LibraryPath())
	if err != nil {
		return nil, nil, err
	}
	lib := library.New(s, library.WithReadingSpeed(a.config().Defaults.ReadingSpeedWPM))
	return lib, s, nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sxyu/bacon2/internal/persist"
	"github.com/sxyu/bacon2/pkg/session"
)

var (
	sessionName string
	workers     int
	log         zerolog.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bacon",
		Short: "Evaluate and tune strategies for the dice game Hog",
	}
	root.PersistentFlags().StringVar(&sessionName, "session", "", "session name (transient if empty)")
	root.PersistentFlags().IntVar(&workers, "workers", 4, "number of parallel tournament workers")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}

	root.AddCommand(
		newSessionCmd(),
		newWinRateCmd(),
		newRunCmd(),
		newTrainCmd(),
		newOptimalCmd(),
		newDrawCmd(),
	)
	return root
}

// storageRoot returns the directory all named sessions live under:
// .bacon2 in the user's home directory, on every platform.
func storageRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cli: resolving home directory: %w", err)
	}
	return filepath.Join(home, ".bacon2"), nil
}

// openSession loads (or creates) the named session. An empty name
// yields a transient, unbacked session.
func openSession(name string) (*session.Session, error) {
	if name == "" {
		return session.New("", nil)
	}
	root, err := storageRoot()
	if err != nil {
		return nil, err
	}
	store, err := persist.NewFileStore(filepath.Join(root, name))
	if err != nil {
		return nil, err
	}
	return session.New(name, store)
}

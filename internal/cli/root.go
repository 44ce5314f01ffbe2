// Package cli implements the gumshoe command tree: the interactive play
// session, chapter listings, and the content vet tool for authors.
package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	NoColor bool
	DataDir string
}

// NewRootCommand creates the gumshoe root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gumshoe",
		Short: "Learn SQL by working cases",
		Long: `gumshoe is an interactive SQL tutorial with a detective framing:
you investigate a seeded world by writing queries, and every step checks
your result against the case file's canonical answer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.NoColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging to stderr")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", defaultDataDir(), "directory for the progress database")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewChaptersCommand(opts))
	cmd.AddCommand(NewVetCommand(opts))

	return cmd
}

// newLogger builds the operator-facing logger. Reference-query failures
// and other authoring defects land here, never in learner output.
func newLogger(opts *RootOptions) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// progressPath resolves the progress database location, creating the
// data directory if needed.
func progressPath(opts *RootOptions) (string, error) {
	if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(opts.DataDir, "progress.db"), nil
}

func defaultDataDir() string {
	if dir := os.Getenv("GUMSHOE_DATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gumshoe"
	}
	return filepath.Join(home, ".gumshoe")
}

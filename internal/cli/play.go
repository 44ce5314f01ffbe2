package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gumshoe-sql/gumshoe/internal/casedb"
	"github.com/gumshoe-sql/gumshoe/internal/content"
	"github.com/gumshoe-sql/gumshoe/internal/progress"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Chapter   string
	Profile   string
	Ephemeral bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a chapter interactively",
		Long: `Play a chapter: read the narrative, write SQL (terminated by ';'),
and check your results against the case file.

Session commands: hint, check, note <text>, skip, quit.

Example:
  gumshoe play
  gumshoe play --chapter case01 --profile sam`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Chapter, "chapter", "case01", "chapter id to play")
	cmd.Flags().StringVar(&opts.Profile, "profile", "gumshoe", "profile name for progress and notes")
	cmd.Flags().BoolVar(&opts.Ephemeral, "ephemeral", false, "don't persist progress")

	return cmd
}

func runPlay(cmd *cobra.Command, opts *PlayOptions) error {
	logger := newLogger(opts.RootOptions)

	chapters, err := content.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load chapters", err)
	}
	chapter, ok := content.Find(chapters, opts.Chapter)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown chapter %q", opts.Chapter))
	}

	// Fresh seeded world per session.
	cdb, err := casedb.OpenMemory()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open case database", err)
	}
	defer cdb.Close()

	var store *progress.Store
	var profile progress.Profile
	if !opts.Ephemeral {
		path, err := progressPath(opts.RootOptions)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to prepare data directory", err)
		}
		store, err = progress.Open(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open progress store", err)
		}
		defer store.Close()

		profile, err = store.EnsureProfile(cmd.Context(), opts.Profile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to resolve profile", err)
		}
	}

	session := NewSession(chapter, cdb.DB(), store, profile, logger, cmd.InOrStdin(), cmd.OutOrStdout())
	return session.Run(cmd.Context())
}

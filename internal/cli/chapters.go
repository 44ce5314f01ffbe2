package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gumshoe-sql/gumshoe/internal/content"
	"github.com/gumshoe-sql/gumshoe/internal/progress"
)

// ChaptersOptions holds flags for the chapters command.
type ChaptersOptions struct {
	*RootOptions
	Profile string
}

// NewChaptersCommand creates the chapters command.
func NewChaptersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChaptersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "List chapters and solved steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChapters(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "gumshoe", "profile whose progress to show")

	return cmd
}

func runChapters(cmd *cobra.Command, opts *ChaptersOptions) error {
	chapters, err := content.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load chapters", err)
	}

	solved := map[string]bool{}
	path, err := progressPath(opts.RootOptions)
	if err == nil {
		store, openErr := progress.Open(path)
		if openErr == nil {
			defer store.Close()
			if profile, pErr := store.EnsureProfile(cmd.Context(), opts.Profile); pErr == nil {
				steps, sErr := store.Solved(cmd.Context(), profile.ID)
				if sErr == nil {
					for _, st := range steps {
						solved[st.ChapterID+"/"+st.StepID] = true
					}
				}
			}
		}
	}

	out := cmd.OutOrStdout()
	for _, ch := range chapters {
		titleColor.Fprintf(out, "%s  %s\n", ch.ID, ch.Title)
		for _, step := range ch.Steps {
			marker := "[ ]"
			if solved[ch.ID+"/"+step.ID] {
				marker = "[x]"
			}
			fmt.Fprintf(out, "  %s %-20s %s\n", marker, step.ID, step.Title)
		}
	}
	return nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gumshoe-sql/gumshoe/internal/content"
)

// NewVetCommand creates the vet command, the content author's tool: it
// checks chapter files against the schema and executes every reference
// query against a fresh seeded case database.
func NewVetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet [dir]",
		Short: "Vet chapter content (schema + reference queries)",
		Long: `Vet chapter content. With no argument, vets the chapters embedded in
this binary. With a directory argument, vets every *.yaml chapter file in it.

A reference query that fails against the seeded case database would reach
learners as an "internal validation error"; vet catches it first.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var issues []content.Issue
			var err error

			if len(args) == 0 {
				issues, err = content.VetEmbedded(cmd.Context())
			} else {
				issues, err = content.VetFS(cmd.Context(), os.DirFS(args[0]), ".")
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "vet failed to run", err)
			}

			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				passColor.Fprintln(out, "content ok")
				return nil
			}

			for _, issue := range issues {
				failColor.Fprintln(out, issue.String())
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d content issue(s)", len(issues)))
		},
	}
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relcut/internal/changelog"
	relerrors "github.com/ariel-frischer/relcut/internal/errors"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print the current unreleased release notes",
	Long: `Print the body of the changelog's "## Unreleased" section, with
category subheadings demoted to plain lines - exactly the text a release
would embed in the tag annotation.

Useful for previewing the tag message before cutting a release, or for
feeding release notes to other tooling.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotes(cmd)
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := changelog.Load(cfg.Changelog)
	if err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Prerequisite, "loading changelog",
			fmt.Sprintf("Make sure %s exists (set 'changelog' in .relcut.yml to use another path)", cfg.Changelog))
	}

	block, err := doc.Extract()
	if err != nil {
		if changelog.IsNoUnreleased(err) {
			return relerrors.NewPrerequisiteError(err.Error(),
				fmt.Sprintf("Add a %q section to %s", changelog.UnreleasedHeading, cfg.Changelog))
		}
		return err
	}

	if len(block) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No unreleased changes.")
		return nil
	}

	for _, line := range block {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

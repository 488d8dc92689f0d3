package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relcut/internal/config"
	relerrors "github.com/ariel-frischer/relcut/internal/errors"
	"github.com/ariel-frischer/relcut/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config template to .relcut.yml",
	Long: `Write a commented configuration template to .relcut.yml in the
current directory. Edit it to point relcut at your changelog, version file,
and branch names.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPaths()[0]
	if _, err := os.Stat(path); err == nil {
		return relerrors.NewConfigError(
			fmt.Sprintf("%s already exists", path),
			"Edit the existing file, or remove it to start over")
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Runtime, "writing config template")
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", path))
	return nil
}

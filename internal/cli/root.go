// Package cli implements the relcut command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relcut/internal/config"
	relerrors "github.com/ariel-frischer/relcut/internal/errors"
	"github.com/ariel-frischer/relcut/internal/git"
	"github.com/ariel-frischer/relcut/internal/release"
)

var (
	cfgFile         string
	changelogFlag   string
	versionFileFlag string
	mainBranchFlag  string
	dryRunFlag      bool
	debugFlag       bool
)

var rootCmd = &cobra.Command{
	Use:   "relcut <version>",
	Short: "Cut a release from the Unreleased changelog section",
	Long: `relcut automates the release-bump workflow:

  1. Extract the "## Unreleased" section of the changelog
  2. Set the new version in the version-declaration file
  3. Stamp the changelog with a dated version heading
  4. Commit both files ("Bump version to <version>")
  5. Create an annotated tag carrying the release notes
  6. Force-move the release branch to the new commit

Pushing is left to you; relcut prints the exact command when it finishes.
The version string is used as-is - no format is enforced.`,
	Example: `  # Cut version 3.4.2
  relcut 3.4.2

  # Preview without touching anything
  relcut 3.4.2 --dry-run

  # Show what would go into the tag message
  relcut notes`,
	Args:          requireVersionArg,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd, args[0])
	},
}

// requireVersionArg validates the single positional version argument,
// returning a structured argument error that carries the correct usage.
func requireVersionArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		err := relerrors.NewArgumentError(
			fmt.Sprintf("expected exactly one version argument, got %d", len(args)),
			"Pass the version to release, e.g. relcut 3.4.2")
		err.Usage = "relcut <version>"
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .relcut.yml or .relcut.json)")
	rootCmd.PersistentFlags().StringVar(&changelogFlag, "changelog", "", "Changelog path (default: CHANGELOG.md)")
	rootCmd.PersistentFlags().StringVar(&versionFileFlag, "version-file", "", "Version-declaration file path")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")

	rootCmd.Flags().StringVar(&mainBranchFlag, "main-branch", "", "Branch named in the push reminder")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview the release without side effects")
}

// Execute runs the CLI. Errors are printed here; main only maps them to an
// exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := relerrors.AsCLIError(err); cliErr != nil {
		relerrors.PrintError(cliErr)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// loadConfig loads configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.Configuration, "loading configuration",
			"Check the syntax of your .relcut.yml / .relcut.json")
	}

	if changelogFlag != "" {
		cfg.Changelog = changelogFlag
	}
	if versionFileFlag != "" {
		cfg.VersionFile = versionFileFlag
	}
	if mainBranchFlag != "" {
		cfg.MainBranch = mainBranchFlag
	}
	return cfg, nil
}

func runRelease(cmd *cobra.Command, version string) error {
	if debugFlag {
		git.SetDebugLogger(func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		})
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := release.Options{
		Changelog:     cfg.Changelog,
		VersionFile:   cfg.VersionFile,
		MainBranch:    cfg.MainBranch,
		ReleaseBranch: cfg.ReleaseBranch,
		TagPrefix:     cfg.TagPrefix,
		DryRun:        dryRunFlag,
	}

	// A dry run never opens the repository, so it works outside git too.
	var pub git.Publisher
	if !dryRunFlag {
		repo, err := git.Open("")
		if err != nil {
			return relerrors.WrapWithMessage(err, relerrors.Prerequisite, "opening repository",
				"Run relcut inside the project's git repository")
		}
		pub = repo
	}

	return release.NewRunner(opts, pub, cmd.OutOrStdout()).Run(version)
}

package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relcut/internal/version"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for relcut",
	Example: `  # Show version info
  relcut version

  # Plain output (for scripts)
  relcut version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			fmt.Fprintf(cmd.OutOrStdout(), "relcut %s\n", version.Version)
			return
		}
		printVersionInfo(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

func printVersionInfo(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	name := "relcut " + version.Version
	if version.IsDevBuild() {
		name += " (dev build)"
	}
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintln(out, cyan(name))

	fmt.Fprintf(out, "commit: %s\n", version.Commit)
	fmt.Fprintf(out, "built: %s\n", version.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// Package cli tests the relcut command tree and exit code mapping.
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relerrors "github.com/ariel-frischer/relcut/internal/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "relcut <version>", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_Flags(t *testing.T) {
	tests := map[string]struct {
		flagName   string
		persistent bool
	}{
		"config flag":       {flagName: "config", persistent: true},
		"changelog flag":    {flagName: "changelog", persistent: true},
		"version-file flag": {flagName: "version-file", persistent: true},
		"debug flag":        {flagName: "debug", persistent: true},
		"main-branch flag":  {flagName: "main-branch", persistent: false},
		"dry-run flag":      {flagName: "dry-run", persistent: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			flags := rootCmd.Flags()
			if tt.persistent {
				flags = rootCmd.PersistentFlags()
			}
			assert.NotNil(t, flags.Lookup(tt.flagName), "flag %s should exist", tt.flagName)
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["notes"], "should have notes subcommand")
	assert.True(t, names["version"], "should have version subcommand")
	assert.True(t, names["init"], "should have init subcommand")
}

func TestRootCmd_RequiresVersionArgument(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{})
	require.Error(t, err)

	cliErr := relerrors.AsCLIError(err)
	require.NotNil(t, cliErr, "argument validation should return a structured error")
	assert.Equal(t, relerrors.Argument, cliErr.Category)
	assert.Equal(t, "relcut <version>", cliErr.Usage)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))

	err = rootCmd.Args(rootCmd, []string{"1.2.3"})
	assert.NoError(t, err)

	err = rootCmd.Args(rootCmd, []string{"1.2.3", "extra"})
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":           {err: nil, want: ExitSuccess},
		"plain error":         {err: assert.AnError, want: ExitFailure},
		"argument error":      {err: relerrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"configuration error": {err: relerrors.NewConfigError("bad"), want: ExitInvalidArguments},
		"prerequisite error":  {err: relerrors.NewPrerequisiteError("not ready"), want: ExitMissingPrerequisites},
		"runtime error":       {err: relerrors.NewRuntimeError("boom"), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

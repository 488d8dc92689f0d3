package cli

import relerrors "github.com/ariel-frischer/relcut/internal/errors"

// Exit codes for the relcut CLI.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitFailure indicates the release pipeline failed.
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration.
	ExitInvalidArguments = 3

	// ExitMissingPrerequisites indicates the changelog, version file, or
	// repository is not in a releasable state.
	ExitMissingPrerequisites = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	cliErr := relerrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}

	switch cliErr.Category {
	case relerrors.Argument, relerrors.Configuration:
		return ExitInvalidArguments
	case relerrors.Prerequisite:
		return ExitMissingPrerequisites
	default:
		return ExitFailure
	}
}

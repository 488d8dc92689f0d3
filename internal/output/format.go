// Package output provides terminal output formatting for the relcut CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTTY reports whether stdout is a terminal. Spinners and other purely
// decorative output are suppressed when it is not.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintStep prints a numbered pipeline step header, e.g. "[2/4] Tagging...".
func PrintStep(out io.Writer, stepNum, totalSteps int, name string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[%d/%d]", stepNum, totalSteps)), white(name+"..."))
}

// PrintSuccess prints a green checkmark with a message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintDryRun prints a step that would run without --dry-run.
func PrintDryRun(out io.Writer, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("→ would"), dim(message))
}

// PrintPushReminder prints the follow-up publish command for a finished
// release: the main branch, the release branch, and the new tag.
func PrintPushReminder(out io.Writer, mainBranch, releaseBranch, tag string) {
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", white("Don't forget to push:"))
	fmt.Fprintf(out, "  %s\n", cyan(fmt.Sprintf("git push origin %s %s %s", mainBranch, releaseBranch, tag)))
}

// Spinner wraps the terminal spinner so callers never have to care whether
// stdout is a TTY. On non-terminals all methods are no-ops.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner starts a spinner with the given suffix message when stdout is
// a terminal, and returns an inert Spinner otherwise.
func StartSpinner(message string) *Spinner {
	if !IsTTY() {
		return &Spinner{}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return &Spinner{s: s}
}

// Stop stops the spinner if one is running.
func (s *Spinner) Stop() {
	if s.s != nil {
		s.s.Stop()
	}
}

// Package release implements the publish pipeline: extract the unreleased
// notes, stamp the changelog and version file, commit, tag, and move the
// release branch. Steps run strictly in sequence and the pipeline aborts on
// the first failure; there is no rollback, so a failure after the file
// writes leaves the bumped files modified in the working tree.
package release

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/relcut/internal/changelog"
	relerrors "github.com/ariel-frischer/relcut/internal/errors"
	"github.com/ariel-frischer/relcut/internal/fsutil"
	"github.com/ariel-frischer/relcut/internal/git"
	"github.com/ariel-frischer/relcut/internal/output"
	"github.com/ariel-frischer/relcut/internal/versionfile"
)

// Options configures a release run.
type Options struct {
	// Changelog is the changelog path.
	Changelog string
	// VersionFile is the version-declaration file path.
	VersionFile string
	// MainBranch is the branch named in the push reminder.
	MainBranch string
	// ReleaseBranch is force-moved to the release commit.
	ReleaseBranch string
	// TagPrefix is prepended to the version for the tag name.
	TagPrefix string
	// DryRun previews the release without writing files or touching the
	// repository.
	DryRun bool
}

// totalSteps is the number of numbered pipeline steps a real run prints.
const totalSteps = 5

// Runner executes the release pipeline.
type Runner struct {
	opts Options
	pub  git.Publisher
	out  io.Writer
	now  func() time.Time
}

// Option is a functional option for configuring a Runner.
type Option func(*Runner)

// WithClock overrides the clock used for the release date. Tests use this
// to pin the date.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a release runner. pub may be nil only for dry runs.
func NewRunner(opts Options, pub git.Publisher, out io.Writer, options ...Option) *Runner {
	r := &Runner{
		opts: opts,
		pub:  pub,
		out:  out,
		now:  time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Annotation builds the tag message: a "Version x - date" headline, a blank
// line, and the extracted change block.
func Annotation(version, date string, block []string) string {
	return fmt.Sprintf("Version %s - %s\n\n%s\n", version, date, strings.Join(block, "\n"))
}

// Run cuts a release for the given version. The version string is opaque;
// no format is enforced.
func (r *Runner) Run(version string) error {
	date := r.now().Format("2006-01-02")
	tag := r.opts.TagPrefix + version

	// Everything up to the first write is read-only, so a missing section
	// or an ambiguous version file aborts before any file is modified.
	doc, err := changelog.Load(r.opts.Changelog)
	if err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Prerequisite, "loading changelog",
			fmt.Sprintf("Make sure %s exists (set 'changelog' in .relcut.yml to use another path)", r.opts.Changelog))
	}

	block, err := doc.Extract()
	if err != nil {
		if changelog.IsNoUnreleased(err) {
			return relerrors.NewPrerequisiteError(err.Error(),
				fmt.Sprintf("Add a %q section to %s before releasing", changelog.UnreleasedHeading, r.opts.Changelog))
		}
		return relerrors.WrapWithMessage(err, relerrors.Runtime, "extracting release notes")
	}

	annotation := Annotation(version, date, block)

	newDoc, err := doc.Rewrite(version, date)
	if err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Runtime, "rewriting changelog")
	}

	if r.opts.DryRun {
		return r.dryRun(version, date, tag, annotation)
	}

	output.PrintStep(r.out, 1, totalSteps, "Setting version in "+r.opts.VersionFile)
	if err := versionfile.PatchFile(r.opts.VersionFile, version); err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Prerequisite, "patching version file",
			fmt.Sprintf(`%s must contain exactly one VERSION = "..." line`, r.opts.VersionFile))
	}
	output.PrintSuccess(r.out, fmt.Sprintf("Set version %s in %s", version, r.opts.VersionFile))

	output.PrintStep(r.out, 2, totalSteps, "Stamping "+r.opts.Changelog)
	if err := fsutil.WriteFileAtomic(r.opts.Changelog, []byte(newDoc.String()), 0o644); err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Runtime, "writing changelog",
			fmt.Sprintf("%s has already been updated; restore it from version control before retrying", r.opts.VersionFile))
	}
	output.PrintSuccess(r.out, fmt.Sprintf("Stamped %s under %s", r.opts.Changelog, changelog.Heading(version, date)))

	if err := r.publish(version, tag, annotation); err != nil {
		return err
	}

	output.PrintPushReminder(r.out, r.opts.MainBranch, r.opts.ReleaseBranch, tag)
	return nil
}

// publish drives the git collaborator: commit, annotated tag, branch move.
func (r *Runner) publish(version, tag, annotation string) error {
	files, err := r.repoRelativeFiles()
	if err != nil {
		return err
	}

	output.PrintStep(r.out, 3, totalSteps, "Committing")
	spin := output.StartSpinner("committing release")
	hash, err := r.pub.Commit(files, "Bump version to "+version)
	spin.Stop()
	if err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Runtime, "committing release",
			"The bumped files are still modified in your working tree",
			"Commit them manually or restore them from version control")
	}
	output.PrintSuccess(r.out, fmt.Sprintf("Committed %s (%.8s)", version, hash))

	output.PrintStep(r.out, 4, totalSteps, "Tagging "+tag)
	if err := r.pub.CreateTag(tag, annotation); err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Runtime, "tagging release",
			"The release commit exists but is untagged",
			fmt.Sprintf("Create the tag manually: git tag -a %s", tag))
	}
	output.PrintSuccess(r.out, fmt.Sprintf("Tagged %s", tag))

	output.PrintStep(r.out, 5, totalSteps, "Moving branch "+r.opts.ReleaseBranch)
	if err := r.pub.MoveBranch(r.opts.ReleaseBranch); err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Runtime, "moving release branch",
			fmt.Sprintf("Move it manually: git branch -f %s", r.opts.ReleaseBranch))
	}
	output.PrintSuccess(r.out, fmt.Sprintf("Moved branch %s to the release commit", r.opts.ReleaseBranch))

	return nil
}

// repoRelativeFiles maps the two bumped files to worktree-relative paths,
// since go-git stages by path relative to the repository root.
func (r *Runner) repoRelativeFiles() ([]string, error) {
	root, err := r.pub.Root()
	if err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.Prerequisite, "locating repository",
			"Run relcut inside the project's git repository")
	}

	files := make([]string, 0, 2)
	for _, path := range []string{r.opts.Changelog, r.opts.VersionFile} {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, relerrors.WrapWithMessage(err, relerrors.Runtime, "resolving path")
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, relerrors.NewPrerequisiteError(
				fmt.Sprintf("%s is outside the repository at %s", path, root),
				"Run relcut from the repository containing the changelog and version file")
		}
		files = append(files, filepath.ToSlash(rel))
	}
	return files, nil
}

// dryRun validates the version file and prints the steps a real run would
// take. Nothing is written and the repository is never opened.
func (r *Runner) dryRun(version, date, tag, annotation string) error {
	content, err := os.ReadFile(r.opts.VersionFile)
	if err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Prerequisite, "reading version file")
	}
	if _, err := versionfile.Patch(content, version); err != nil {
		return relerrors.WrapWithMessage(err, relerrors.Prerequisite, "patching version file",
			fmt.Sprintf(`%s must contain exactly one VERSION = "..." line`, r.opts.VersionFile))
	}

	output.PrintDryRun(r.out, fmt.Sprintf("set version %s in %s", version, r.opts.VersionFile))
	output.PrintDryRun(r.out, fmt.Sprintf("insert %q into %s", changelog.Heading(version, date), r.opts.Changelog))
	output.PrintDryRun(r.out, fmt.Sprintf("commit %s and %s: Bump version to %s", r.opts.Changelog, r.opts.VersionFile, version))
	output.PrintDryRun(r.out, fmt.Sprintf("create annotated tag %s:", tag))
	for _, line := range strings.Split(strings.TrimRight(annotation, "\n"), "\n") {
		fmt.Fprintf(r.out, "    %s\n", line)
	}
	output.PrintDryRun(r.out, fmt.Sprintf("force-move branch %s to the release commit", r.opts.ReleaseBranch))
	return nil
}

// Package git drives the local repository side of a release: staging and
// committing the bumped files, creating the annotated release tag, and
// force-moving the release branch. It uses the go-git library exclusively,
// so relcut never shells out to the git binary, and it never touches a
// remote (pushing is deliberately left to the operator).
package git

import (
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it is a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Publisher is the version-control collaborator the release pipeline drives.
// Injecting it keeps the text-transformation pipeline testable without a
// real repository.
type Publisher interface {
	// Root returns the absolute path of the repository worktree root.
	Root() (string, error)
	// Commit stages the given worktree-relative files and commits them.
	// Returns the new commit hash.
	Commit(files []string, message string) (string, error)
	// CreateTag creates an annotated tag at HEAD with the given message.
	CreateTag(name, message string) error
	// MoveBranch force-moves the named branch to HEAD. This is a plain
	// reference update, never a merge, and creates the branch if missing.
	MoveBranch(name string) error
}

// Repo is the go-git backed Publisher implementation.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository containing path (or the current working
// directory when path is empty), traversing up to find the .git directory.
func Open(path string) (*Repo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repo{repo: repo}, nil
}

// Root returns the absolute path to the repository worktree root.
func (r *Repo) Root() (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// identity resolves the committer identity from git config, merging the
// local, global, and system scopes the way the git CLI does.
func (r *Repo) identity() (*object.Signature, error) {
	cfg, err := r.repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		return nil, fmt.Errorf("reading git config: %w", err)
	}

	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil, fmt.Errorf("git user identity is not configured (user.name / user.email)")
	}

	return &object.Signature{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
		When:  time.Now(),
	}, nil
}

// Commit stages the given worktree-relative files and commits them with the
// given message. Untouched files stay unstaged.
func (r *Repo) Commit(files []string, message string) (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	for _, file := range files {
		if _, err := worktree.Add(file); err != nil {
			return "", fmt.Errorf("staging %s: %w", file, err)
		}
	}

	author, err := r.identity()
	if err != nil {
		return "", err
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{Author: author})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}

	logDebug("[git] committed %s: %s", hash, message)
	return hash.String(), nil
}

// CreateTag creates an annotated tag at HEAD carrying the given message.
func (r *Repo) CreateTag(name, message string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	tagger, err := r.identity()
	if err != nil {
		return err
	}

	_, err = r.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  tagger,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}

	logDebug("[git] tagged %s at %s", name, head.Hash())
	return nil
}

// MoveBranch force-moves the named branch to the current HEAD commit.
func (r *Repo) MoveBranch(name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("moving branch %s: %w", name, err)
	}

	logDebug("[git] moved branch %s to %s", name, head.Hash())
	return nil
}

// Package git publishes flushed batches of DID documents by driving the git
// CLI against a local working copy of the hosting repository.
//
// PUBLICATION MODEL:
// One Repository guards one working copy. Every flush runs under a single
// mutex, so overlapping flushes serialize instead of corrupting the index.
// Within a flush the publisher validates that each document's identifier
// actually belongs to the repository the remote points at, checks out the
// publication branch, stages every file in one command, and lands one commit
// plus one push for the whole batch. A batch whose staged diff is empty skips
// both the commit and the push, which makes re-publication of unchanged
// documents idempotent.
//
// The git binary does the heavy lifting. Shelling out keeps the behavior
// identical to what an operator gets by hand, including credential helpers,
// insteadOf rewrites, and hooks.
package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/didpress/didpress/internal/logging"
)

// Repository is a handle on the working copy publications land in. Safe for
// concurrent use; all publishing work serializes on the internal mutex.
type Repository struct {
	dir          string // Absolute path of the working copy
	remote       string
	branch       string
	commitPrefix string
	authorName   string
	authorEmail  string

	mu sync.Mutex // Serializes whole flushes
}

// Open binds a Repository to the working copy at dir, verifying that git is
// available and that dir really is inside a work tree. It does not touch the
// remote; that happens lazily on the first publish.
func Open(dir string, config *Config) (*Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving repository path %s: %w", dir, err)
	}

	r := &Repository{
		dir:          abs,
		remote:       config.Remote,
		branch:       config.Branch,
		commitPrefix: config.CommitPrefix,
		authorName:   config.AuthorName,
		authorEmail:  config.AuthorEmail,
	}

	out, err := r.git("rev-parse", "--is-inside-work-tree")
	if err != nil {
		return nil, fmt.Errorf("%s is not a git working copy: %w", abs, err)
	}
	if out != "true" {
		return nil, fmt.Errorf("%s is not a git working copy", abs)
	}

	logging.Info("Publisher: Opened working copy at %s (remote: %s, branch: %s)", abs, r.remote, r.branch)
	return r, nil
}

// Dir returns the absolute path of the working copy.
func (r *Repository) Dir() string {
	return r.dir
}

// EnsureRemote makes sure the configured remote exists, adding it with url
// when missing. An existing remote is never rewritten, even when it points
// somewhere else; the operator set it up on purpose.
func (r *Repository) EnsureRemote(url string) error {
	existing, err := r.git("remote", "get-url", r.remote)
	if err == nil {
		if existing != url {
			logging.Warn("Publisher: Remote %s already points at %s, leaving it alone", r.remote, existing)
		}
		return nil
	}

	if _, err := r.git("remote", "add", r.remote, url); err != nil {
		return fmt.Errorf("adding remote %s: %w", r.remote, err)
	}
	logging.Info("Publisher: Added remote %s -> %s", r.remote, url)
	return nil
}

// git runs one git command in the working copy and returns its trimmed
// stdout. Failures come back as a *CommandError carrying stderr.
func (r *Repository) git(args ...string) (string, error) {
	logging.Debug("Publisher: git %s", strings.Join(args, " "))

	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// ensureBranch puts the working copy on the publication branch, creating it
// from the current HEAD when it does not exist yet.
func (r *Repository) ensureBranch() error {
	current, err := r.git("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return fmt.Errorf("reading current branch: %w", err)
	}
	if current == r.branch {
		return nil
	}

	if _, err := r.git("rev-parse", "--verify", r.branch); err != nil {
		if _, err := r.git("checkout", "-b", r.branch); err != nil {
			return fmt.Errorf("creating branch %s: %w", r.branch, err)
		}
		logging.Info("Publisher: Created branch %s", r.branch)
		return nil
	}

	if _, err := r.git("checkout", r.branch); err != nil {
		return fmt.Errorf("checking out branch %s: %w", r.branch, err)
	}
	return nil
}

package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/didpress/didpress/internal/batching"
	"github.com/didpress/didpress/internal/logging"
)

// Publish pushes one flushed batch to the hosting repository. It implements
// batching.Publisher.
//
// The batch fails as a whole before any mutation if the remote is missing,
// not a GitHub URL, or owned by someone other than the documents'
// identifiers claim. After validation the files are staged in one command
// and land as one commit and one push; a staged diff that comes up empty
// skips both, so republishing unchanged documents leaves no trace.
//
// There is no rollback. A push that fails after the commit leaves the commit
// in the working copy, and the next flush retries the push by pushing on top
// of it.
func (r *Repository) Publish(items []batching.Item) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	logging.Debug("Publisher: Acquired repository lock for batch of %d files", len(items))

	remoteURL, err := r.remoteURL()
	if err != nil {
		return err
	}
	// A remote whose owner cannot be determined fails the same way an
	// ownership mismatch does: nothing may be staged against it.
	owner, repo, err := ParseGitHubRemote(remoteURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOwnershipMismatch, err)
	}

	if err := r.validateOwnership(items, owner, repo); err != nil {
		return err
	}

	files := make([]string, len(items))
	for i, item := range items {
		files[i] = item.TargetFile
	}
	return r.pushBatch(files)
}

// pushBatch stages, commits, and pushes one validated batch. Caller holds the
// repository lock.
func (r *Repository) pushBatch(files []string) error {
	if err := r.ensureBranch(); err != nil {
		return err
	}

	if _, err := r.git(append([]string{"add", "--"}, files...)...); err != nil {
		return fmt.Errorf("staging files: %w", err)
	}

	changed, err := r.stagedChanges()
	if err != nil {
		return fmt.Errorf("checking staged changes: %w", err)
	}
	if !changed {
		logging.Info("Publisher: No staged changes in batch of %d files, skipping commit and push", len(files))
		return nil
	}

	message := fmt.Sprintf("%s (%d files): %s", r.commitPrefix, len(files), strings.Join(files, ", "))
	if _, err := r.git(r.commitArgs(message)...); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	if _, err := r.git("push", "-u", r.remote, r.branch); err != nil {
		return fmt.Errorf("pushing to %s/%s: %w", r.remote, r.branch, err)
	}

	logging.Info("Publisher: Pushed batch of %d files to %s/%s", len(files), r.remote, r.branch)
	return nil
}

// remoteURL resolves the configured remote, mapping a missing remote onto
// ErrRemoteNotFound.
func (r *Repository) remoteURL() (string, error) {
	url, err := r.git("remote", "get-url", r.remote)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, r.remote)
	}
	return url, nil
}

// validateOwnership checks every distinct host in the batch against the
// remote's owner and repository. The check is cached per host within the
// flush, matching how the remote itself is resolved once per flush.
func (r *Repository) validateOwnership(items []batching.Item, owner, repo string) error {
	validated := make(map[string]bool)
	for _, item := range items {
		key := item.DID.HostLower
		if validated[key] {
			continue
		}

		if !strings.EqualFold(owner, item.DID.Owner()) {
			return fmt.Errorf("%w: remote owner %q cannot host documents for %q",
				ErrOwnershipMismatch, owner, item.DID.Owner())
		}
		if !strings.EqualFold(repo, item.DID.Namespace) {
			return fmt.Errorf("%w: remote repository %q does not match namespace %q",
				ErrOwnershipMismatch, repo, item.DID.Namespace)
		}

		validated[key] = true
		logging.Debug("Publisher: Ownership check passed for %s (owner: %s, repository: %s)", key, owner, repo)
	}
	return nil
}

// stagedChanges reports whether the index differs from HEAD. git diff
// --cached --quiet exits 0 on a clean index and 1 when changes are staged;
// anything else is a real failure.
func (r *Repository) stagedChanges() (bool, error) {
	_, err := r.git("diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		var exitErr *exec.ExitError
		if errors.As(cmdErr.Err, &exitErr) && exitErr.ExitCode() == 1 {
			return true, nil
		}
	}
	return false, err
}

// commitArgs builds the commit invocation, overriding the author identity
// when the configuration carries one.
func (r *Repository) commitArgs(message string) []string {
	var args []string
	if r.authorName != "" && r.authorEmail != "" {
		args = append(args,
			"-c", "user.name="+r.authorName,
			"-c", "user.email="+r.authorEmail,
		)
	}
	return append(args, "commit", "-m", message)
}

package git

import (
	"fmt"

	"github.com/didpress/didpress/internal/validate"
)

const (
	// DefaultRemote is the remote publications are pushed to.
	DefaultRemote = "origin"

	// DefaultBranch is the branch GitHub Pages serves from.
	DefaultBranch = "gh-pages"

	// DefaultCommitPrefix leads every publication commit message.
	DefaultCommitPrefix = "chore (did): update did:web documents"
)

// Config holds the publication target: which remote and branch to push to,
// how commits are titled, and optionally who authors them. The author pair is
// optional because most deployments inherit identity from the working copy's
// own git config.
type Config struct {
	Remote       string // Remote name publications push to
	Branch       string // Branch publications land on
	CommitPrefix string // Leading text of every publication commit message
	AuthorName   string // Commit author name override, empty to inherit
	AuthorEmail  string // Commit author email override, empty to inherit
}

// DefaultConfig returns the stock GitHub Pages publication target.
func DefaultConfig() *Config {
	return &Config{
		Remote:       DefaultRemote,
		Branch:       DefaultBranch,
		CommitPrefix: DefaultCommitPrefix,
	}
}

// Validate checks that the publication target names are ones git will accept,
// catching typos before the first flush instead of inside it.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.Remote, "remote name"); err != nil {
		return err
	}
	if err := validate.RemoteNameFormat(c.Remote); err != nil {
		return fmt.Errorf("remote name validation failed: %w", err)
	}
	if err := validate.ValidateRequiredString(c.Branch, "branch name"); err != nil {
		return err
	}
	if err := validate.BranchNameFormat(c.Branch); err != nil {
		return fmt.Errorf("branch name validation failed: %w", err)
	}
	if err := validate.ValidateRequiredString(c.CommitPrefix, "commit message prefix"); err != nil {
		return err
	}

	// The author override only makes sense as a complete identity.
	if (c.AuthorName == "") != (c.AuthorEmail == "") {
		return fmt.Errorf("author name and author email must be set together")
	}

	return nil
}

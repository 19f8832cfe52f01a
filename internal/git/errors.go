package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRemoteNotFound reports that the configured remote does not exist in
	// the working copy, so there is nowhere to push published documents.
	ErrRemoteNotFound = errors.New("git remote not found")

	// ErrOwnershipMismatch reports a batch containing a document whose
	// identifier does not belong to the repository the remote points at.
	// The whole flush fails before anything is staged.
	ErrOwnershipMismatch = errors.New("repository ownership mismatch")
)

// CommandError carries a failed git invocation together with its stderr so
// failures surface with enough context to debug from logs alone.
type CommandError struct {
	Args   []string // Arguments passed to git
	Stderr string   // Trimmed stderr output
	Err    error    // Underlying exec error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, e.Stderr)
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

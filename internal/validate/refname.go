// Package validate provides input validation utilities for didpress operations,
// ensuring data integrity for values that end up on a git command line.
//
// Implements validation rules for branch and remote names following a practical
// subset of git's check-ref-format rules. Prevents malformed configuration from
// producing confusing git failures at flush time, long after startup.
//
// VALIDATION COVERAGE:
//   - Branch Names: Format validation for the publication target branch
//   - Remote Names: Format validation for the configured remote
//
// Used by configuration validation so bad ref names are rejected at startup
// instead of inside the first publish.

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// branchNameRegex covers the character set accepted for branch names.
// Slashes are allowed for hierarchical branches like "release/gh-pages".
var branchNameRegex = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)

// remoteNameRegex covers the character set accepted for remote names.
var remoteNameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// BranchNameFormat validates branch names against git ref naming requirements.
// Ensures names contain only [A-Za-z0-9._/-], never start with a hyphen (which
// git would parse as a flag), and avoid the sequences git refuses outright.
func BranchNameFormat(name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}

	if !branchNameRegex.MatchString(name) {
		return fmt.Errorf("branch name '%s' must contain only letters, numbers, dots (.), slashes (/), hyphens (-), and underscores (_)", name)
	}

	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("branch name '%s' cannot start with a hyphen", name)
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("branch name '%s' cannot start or end with a slash", name)
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("branch name '%s' cannot end with a dot or '.lock'", name)
	}
	if strings.Contains(name, "..") || strings.Contains(name, "//") {
		return fmt.Errorf("branch name '%s' cannot contain '..' or '//'", name)
	}

	return nil
}

// RemoteNameFormat validates remote names like "origin" or "upstream".
// Remote names are flat: the slash is not allowed, unlike branch names.
func RemoteNameFormat(name string) error {
	if name == "" {
		return fmt.Errorf("remote name cannot be empty")
	}

	if !remoteNameRegex.MatchString(name) {
		return fmt.Errorf("remote name '%s' must contain only letters, numbers, dots (.), hyphens (-), and underscores (_)", name)
	}

	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("remote name '%s' cannot start with a hyphen", name)
	}

	return nil
}

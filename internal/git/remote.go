package git

import (
	"fmt"
	"regexp"
	"strings"
)

// GitHub remote forms the publisher accepts. The repository part may carry a
// .git suffix, which gets trimmed after matching.
var (
	sshRemotePattern   = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+)(\.git)?$`)
	httpsRemotePattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)(\.git)?$`)
)

// ParseGitHubRemote extracts the owner and repository name from a GitHub
// remote URL in SSH (git@github.com:owner/repo.git) or HTTPS
// (https://github.com/owner/repo) form. Anything else is rejected: ownership
// validation only works against remotes whose owner is knowable.
func ParseGitHubRemote(remoteURL string) (owner, repo string, err error) {
	if matches := sshRemotePattern.FindStringSubmatch(remoteURL); len(matches) >= 3 {
		return matches[1], strings.TrimSuffix(matches[2], ".git"), nil
	}
	if matches := httpsRemotePattern.FindStringSubmatch(remoteURL); len(matches) >= 3 {
		return matches[1], strings.TrimSuffix(matches[2], ".git"), nil
	}
	return "", "", fmt.Errorf("remote %q is not a GitHub SSH or HTTPS URL", remoteURL)
}

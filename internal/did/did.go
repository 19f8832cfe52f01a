// Package did implements parsing and path derivation for did:web identifiers
// hosted on public GitHub Pages.
//
// A publishable identifier has the shape:
//
//	did:web:<host>:<namespace>[:<segment>...]
//
// where <host> must end in ".github.io" and <namespace> names the repository
// the document is published into. The package derives everything the rest of
// the service needs from one parsed value: the on-disk target file inside the
// working copy, the upstream URL the document is fetched from, the canonical
// id the fetched document must declare, and the GitHub account implied by the
// host for ownership validation.
//
// Parsing is pure string work: malformed input is rejected without any I/O.
package did

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// Prefix is the required method prefix for publishable identifiers.
	Prefix = "did:web:"

	// HostSuffix is the public-hosting suffix every identifier host must
	// carry. Hosts outside it cannot be served by a GitHub Pages remote.
	HostSuffix = ".github.io"

	// DocumentName is the fixed file name a DID document is stored under,
	// both upstream and inside the working copy.
	DocumentName = "did.json"
)

// ErrMalformedDID indicates an identifier that cannot be published: wrong
// method, missing segments, or a host outside the supported hosting suffix.
// Returned wrapped with detail; match with errors.Is.
var ErrMalformedDID = errors.New("malformed did:web identifier")

// Identifier is a decomposed did:web identifier. Immutable once parsed.
type Identifier struct {
	Original     string   // the identifier exactly as submitted
	Host         string   // pages host, original casing preserved
	Namespace    string   // repository name segment
	PathSegments []string // remaining segments, possibly empty
	HostLower    string   // lowercased host, used for ownership comparison
}

// Parse decomposes an identifier string. It fails with a wrapped
// ErrMalformedDID when the method prefix is missing, the namespace segment is
// absent, any segment is empty, or the host lacks the public-hosting suffix.
func Parse(s string) (Identifier, error) {
	if !strings.HasPrefix(s, Prefix) {
		return Identifier{}, fmt.Errorf("%w: %q is not a did:web identifier", ErrMalformedDID, s)
	}

	parts := strings.Split(s, ":")
	if len(parts) < 4 {
		return Identifier{}, fmt.Errorf("%w: %q is missing the namespace segment", ErrMalformedDID, s)
	}

	for _, part := range parts[2:] {
		if part == "" {
			return Identifier{}, fmt.Errorf("%w: %q contains an empty segment", ErrMalformedDID, s)
		}
	}

	id := Identifier{
		Original:     s,
		Host:         parts[2],
		Namespace:    parts[3],
		PathSegments: parts[4:],
		HostLower:    strings.ToLower(parts[2]),
	}

	if !strings.HasSuffix(id.HostLower, HostSuffix) {
		return Identifier{}, fmt.Errorf("%w: host %q is not under %s", ErrMalformedDID, id.Host, HostSuffix)
	}

	return id, nil
}

// TargetFile derives the file path the document is written to, relative to
// cwd (the working copy directory). The path is built from
// Namespace/PathSegments.../did.json, first stripping leading components that
// already equal trailing components of cwd, walking one directory up per
// stripped component. Running inside a checkout named after the namespace
// therefore yields paths relative to the repository root instead of
// duplicating the nesting.
func (id Identifier) TargetFile(cwd string) string {
	comps := make([]string, 0, len(id.PathSegments)+1)
	comps = append(comps, id.Namespace)
	comps = append(comps, id.PathSegments...)

	dir := cwd
	for len(comps) > 0 && filepath.Base(dir) == comps[0] {
		comps = comps[1:]
		dir = filepath.Dir(dir)
	}

	targetDir := "."
	if len(comps) > 0 {
		targetDir = strings.Join(comps, "/")
	}

	return filepath.Join(targetDir, DocumentName)
}

// ExpectedID reconstructs the canonical identity string the fetched document
// must declare in its "id" field. Host casing is preserved as submitted.
func (id Identifier) ExpectedID() string {
	expected := fmt.Sprintf("did:web:%s:%s", id.Host, id.Namespace)
	if len(id.PathSegments) > 0 {
		expected = expected + ":" + strings.Join(id.PathSegments, ":")
	}
	return expected
}

// DocumentURL builds the upstream fetch URL for the document under baseURL.
// The upstream agent serves documents by URL path while routing on the Host
// header, so the path carries namespace and segments only.
func (id Identifier) DocumentURL(baseURL string) string {
	urlPath := id.Namespace
	if len(id.PathSegments) > 0 {
		urlPath = urlPath + "/" + strings.Join(id.PathSegments, "/")
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(baseURL, "/"), urlPath, DocumentName)
}

// Owner returns the GitHub account name the host claims, derived by trimming
// the hosting suffix from the lowercased host. Used for ownership validation
// against the remote the working copy actually pushes to.
func (id Identifier) Owner() string {
	return strings.TrimSuffix(id.HostLower, HostSuffix)
}

// String returns the identifier as submitted.
func (id Identifier) String() string {
	return id.Original
}

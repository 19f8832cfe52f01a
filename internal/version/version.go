// Package version provides centralized version information for didpress
// monorepo projects. This package supports independent versioning for the
// didpressd daemon and the didpressctl CLI as separate projects within the
// monorepo, allowing them to evolve independently while maintaining
// consistency within each project's components.
// All versions follow semantic versioning (semver) conventions.

package version

// DidpressdVersion holds the current didpressd daemon version.
// Format: major.minor.patch[-prerelease][+build]
const DidpressdVersion = "0.1.0-dev"

// DidpressctlVersion holds the current didpressctl CLI version.
// This is used by the CLI binary and allows independent evolution
// of the management tool separate from the publication daemon.
// Format: major.minor.patch[-prerelease][+build]
const DidpressctlVersion = "0.1.0-dev"

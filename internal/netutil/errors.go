// Package netutil provides network error utilities for the didpress service.
//
// This file implements unified network error checking utilities for consistent
// error classification across networking code paths. Provides proper type-based
// error detection that works reliably across different operating systems and Go
// versions, avoiding fragile string-based error matching.
//
// Key capabilities:
//   - Address-in-use detection for port binding conflicts
//   - Connection-refused detection for unreachable services
//   - Proper error unwrapping and type checking
package netutil

import (
	"errors"
	"net"
	"syscall"
)

// IsAddressInUseError checks if an error indicates "address already in use"
// using proper error type checking rather than string matching.
//
// Used during daemon startup to distinguish a port conflict from other binding
// failures so the operator gets a direct hint instead of a raw socket error.
func IsAddressInUseError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EADDRINUSE)
	}
	return false
}

// IsConnectionRefusedError checks if an error indicates "connection refused"
// using proper error type checking rather than string matching.
//
// Used when an upstream document fetch fails to tell "the agent is down" apart
// from other transport failures in log output.
func IsConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return false
}

// Package utils provides common utility functions for the didpress service.
//
// This file implements unified ID generation used across the service for
// creating unique identifiers. Provides a consistent short ID format for
// flushes and requests so related log lines can be correlated.
//
// ID GENERATION STRATEGY:
// Uses crypto/rand for high-quality random data generation to ensure
// uniqueness and prevent collisions. All IDs follow the same 12-character
// hexadecimal format for consistency and readability.

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateID creates a unique 12-character hex identifier.
// Uses crypto/rand to ensure uniqueness and prevent collisions.
//
// Used for flush identification and logging correlation where concurrent
// operations need to be uniquely referenced. The 12-character format
// balances uniqueness with human readability in logs.
//
// Returns format: "a1b2c3d4e5f6" (12 hex characters, similar to Docker short IDs)
func GenerateID() (string, error) {
	// Generate 6 bytes of random data (12 hex characters)
	bytes := make([]byte, 6)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

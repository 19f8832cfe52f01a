// Package validate provides configuration validation utilities for didpress
// components.
//
// This file implements common validation patterns used across config handling
// to ensure consistency and reduce duplication. All functions leverage the
// go-playground/validator library for standardized validation behavior.
//
// VALIDATION UTILITIES:
//   - Port validation: Standard port range checking (1-65535)
//   - String validation: Required field and non-empty string checking
//   - Timeout validation: Positive duration validation for timeouts
//   - Count validation: Positive integer validation for sizes and capacities
//
// These utilities replace manual validation code scattered across config
// handling with centralized, consistent validation using the validator
// library's built-in tags and error handling.
package validate

import (
	"fmt"
	"time"
)

// ValidatePortRange validates that a port number is within the valid range (1-65535).
// Uses the validator library for consistent error handling and messaging.
// Rejects port 0 (OS-assigned) since the service address must be predictable
// for the upstream agent and operators.
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
// Uses the validator library for consistent error handling across config validation.
//
// Ensures required configuration fields like the upstream URL, branch name,
// and remote name are properly specified before service initialization.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveTimeout validates that a timeout duration is positive (> 0).
// Ensures timeout configurations don't cause infinite waits or immediate
// failures. Used for the batch time ceiling and the upstream fetch timeout.
func ValidatePositiveTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

// ValidatePositiveCount validates that an integer count is positive (> 0).
// Used for the batch size ceiling and admission queue capacity, where zero
// would stall the accumulation loop entirely.
func ValidatePositiveCount(count int, name string) error {
	if count <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

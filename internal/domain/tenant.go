package domain

import (
	"fmt"
	"regexp"
)

// Tenant IDs partition every key, index entry, and cache glob. The character
// set is restricted to runes that are inert in key-scan patterns and FT tag
// queries, so a crafted ID can never widen its own partition.
var tenantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateTenantID rejects missing or malformed tenant identifiers.
func ValidateTenantID(id string) error {
	if id == "" {
		return ErrTenantRequired
	}
	if !tenantIDPattern.MatchString(id) {
		return fmt.Errorf("%w: tenant id may only contain letters, digits, '-' and '_'", ErrValidation)
	}
	return nil
}

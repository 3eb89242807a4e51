// Package domain holds shared sentinel errors and cross-cutting domain types.
package domain

import "errors"

// Sentinel errors for domain operations.
var (
	// ErrValidation marks caller input that was rejected before any store access.
	ErrValidation = errors.New("validation failed")
	// ErrEmployeeNotFound is returned when an employee does not exist in the tenant.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrAlreadyExists is returned when creating an employee with a taken ID.
	ErrAlreadyExists = errors.New("employee already exists")
	// ErrTenantRequired is returned when a tenant ID is missing or malformed.
	ErrTenantRequired = errors.New("tenant id required")
)

package employee

import (
	"context"

	domemp "github.com/stafflink/staffdex/internal/domain/employee"
)

// Repository defines the storage contract for directory entries.
type Repository interface {
	Create(ctx context.Context, tenantID string, emp *domemp.Employee) error
	Update(ctx context.Context, tenantID string, emp *domemp.Employee) error
	Delete(ctx context.Context, tenantID, id string) error
	Get(ctx context.Context, tenantID, id string) (domemp.Employee, error)
	List(ctx context.Context, tenantID string, offset, limit int) ([]domemp.Employee, int, error)
}

// CacheInvalidator evicts a tenant's cached search responses.
type CacheInvalidator interface {
	InvalidateTenant(ctx context.Context, tenantID string) (int, error)
}

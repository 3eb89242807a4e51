// Package employee handles directory CRUD. Every mutation invalidates the
// tenant's cached search responses; without that, cached results would only
// converge via TTL expiry.
package employee

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stafflink/staffdex/internal/domain"
	domemp "github.com/stafflink/staffdex/internal/domain/employee"
	"github.com/stafflink/staffdex/internal/logger"
	"github.com/stafflink/staffdex/internal/metrics"
)

// Pagination defaults for listing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Input carries the caller-supplied attributes of a directory entry.
type Input struct {
	FirstName  string
	LastName   string
	Title      string
	Department string
	Email      string
	PhotoURL   string
	Skills     []string
	Active     bool
}

// Service coordinates employee CRUD and search-cache invalidation.
type Service struct {
	repo            Repository
	cache           CacheInvalidator
	defaultPageSize int
	maxPageSize     int
}

// New creates an employee service.
func New(repo Repository, cache CacheInvalidator) *Service {
	return &Service{
		repo:            repo,
		cache:           cache,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
}

// WithPagination overrides listing page size bounds.
func (s *Service) WithPagination(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// Create validates and stores a new employee, assigning a fresh ID.
func (s *Service) Create(ctx context.Context, tenantID string, in Input) (domemp.Employee, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return domemp.Employee{}, err
	}

	emp, err := domemp.New(
		uuid.NewString(),
		in.FirstName, in.LastName, in.Title, in.Department,
		in.Email, in.PhotoURL, in.Skills, in.Active,
	)
	if err != nil {
		return domemp.Employee{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.repo.Create(ctx, tenantID, &emp); err != nil {
		return domemp.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	s.invalidate(ctx, tenantID)
	return emp, nil
}

// Update validates and overwrites an existing employee.
func (s *Service) Update(ctx context.Context, tenantID, id string, in Input) (domemp.Employee, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return domemp.Employee{}, err
	}

	emp, err := domemp.New(
		id,
		in.FirstName, in.LastName, in.Title, in.Department,
		in.Email, in.PhotoURL, in.Skills, in.Active,
	)
	if err != nil {
		return domemp.Employee{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.repo.Update(ctx, tenantID, &emp); err != nil {
		return domemp.Employee{}, fmt.Errorf("update employee: %w", err)
	}

	s.invalidate(ctx, tenantID)
	return emp, nil
}

// Delete removes an employee.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	s.invalidate(ctx, tenantID)
	return nil
}

// Get returns one employee.
func (s *Service) Get(ctx context.Context, tenantID, id string) (domemp.Employee, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return domemp.Employee{}, err
	}

	emp, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return domemp.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return emp, nil
}

// List returns a page of the tenant's employees plus the total count.
func (s *Service) List(ctx context.Context, tenantID string, page, pageSize int) ([]domemp.Employee, int, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	emps, total, err := s.repo.List(ctx, tenantID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	return emps, total, nil
}

// invalidate evicts the tenant's cached search responses. Best-effort: a
// failed eviction degrades to TTL-bounded staleness, never to an error for
// the mutation itself.
func (s *Service) invalidate(ctx context.Context, tenantID string) {
	evicted, err := s.cache.InvalidateTenant(ctx, tenantID)
	if err != nil {
		logger.FromContext(ctx).Warn("search cache invalidation failed",
			zap.String("tenant", tenantID), zap.Error(err))
		return
	}
	if evicted > 0 {
		metrics.SearchCacheInvalidations.Inc()
	}
}

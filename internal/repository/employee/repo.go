// Package employee persists directory entries as tenant-tagged hashes
// behind a shared FT index.
package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stafflink/staffdex/internal/db"
	"github.com/stafflink/staffdex/internal/domain"
	domemp "github.com/stafflink/staffdex/internal/domain/employee"
)

// store is the consumer interface for employee records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, index string, filters []db.FilterClause, offset, limit int) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters []db.FilterClause) (int, error)
}

// Repo implements usecase/employee.Repository.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates an employee repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// IndexName returns the FT index covering all employee records.
func (r *Repo) IndexName() string {
	return r.keyPrefix + "emp:idx"
}

// keyFor builds the hash key for one employee.
// The tenant segment precedes the ID, so the key itself is tenant-scoped.
func (r *Repo) keyFor(tenantID, id string) string {
	return fmt.Sprintf("%semp:%s:%s", r.keyPrefix, tenantID, id)
}

// ExtractID recovers the employee ID from a search result key.
func (r *Repo) ExtractID(tenantID, key string) string {
	return strings.TrimPrefix(key, fmt.Sprintf("%semp:%s:", r.keyPrefix, tenantID))
}

// EnsureIndex creates the employee FT index if it does not exist.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.IndexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(r.IndexName()).
		Prefix(r.keyPrefix + "emp:").
		Tag(FieldTenant).
		TextWithWeight(FieldFirstName, 2).
		TextWithWeight(FieldLastName, 2).
		Text(FieldTitle).
		Tag(FieldDepartment).
		Tag(FieldEmail).
		TagWithOpts(FieldSkills, skillsSeparator, false).
		Tag(FieldActive).
		Text(FieldSearch).
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Create stores a new employee. Fails if the ID is already taken in the tenant.
func (r *Repo) Create(ctx context.Context, tenantID string, emp *domemp.Employee) error {
	key := r.keyFor(tenantID, emp.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	if err := r.store.HSet(ctx, key, buildHashFields(tenantID, emp)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Update overwrites an existing employee.
func (r *Repo) Update(ctx context.Context, tenantID string, emp *domemp.Employee) error {
	key := r.keyFor(tenantID, emp.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrEmployeeNotFound
	}

	// Full overwrite keeps the denormalized __search field consistent.
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.HSet(ctx, key, buildHashFields(tenantID, emp)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Delete removes an employee.
func (r *Repo) Delete(ctx context.Context, tenantID, id string) error {
	key := r.keyFor(tenantID, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrEmployeeNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Get returns an employee by ID within the tenant.
func (r *Repo) Get(ctx context.Context, tenantID, id string) (domemp.Employee, error) {
	key := r.keyFor(tenantID, id)

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domemp.Employee{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domemp.Employee{}, domain.ErrEmployeeNotFound
	}

	return parseHashFields(id, fields), nil
}

// List returns a page of the tenant's employees plus the total count.
func (r *Repo) List(ctx context.Context, tenantID string, offset, limit int) ([]domemp.Employee, int, error) {
	clauses := []db.FilterClause{
		{Field: FieldTenant, Type: db.ClauseTag, Value: tenantID},
	}

	sr, err := r.store.SearchList(ctx, r.IndexName(), clauses, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("search list: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, 0, nil
	}

	out := make([]domemp.Employee, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := r.ExtractID(tenantID, entry.Key)
		out = append(out, parseHashFields(id, entry.Fields))
	}
	return out, sr.Total, nil
}

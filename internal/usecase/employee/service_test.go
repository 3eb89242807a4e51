package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/stafflink/staffdex/internal/domain"
	domemp "github.com/stafflink/staffdex/internal/domain/employee"
)

// --- Mocks ---

type mockRepo struct {
	createErr error
	updateErr error
	deleteErr error
	getEmp    domemp.Employee
	getErr    error
	listEmps  []domemp.Employee
	listTotal int
	listErr   error

	lastTenant string
	lastOffset int
	lastLimit  int
}

func (m *mockRepo) Create(_ context.Context, tenantID string, _ *domemp.Employee) error {
	m.lastTenant = tenantID
	return m.createErr
}

func (m *mockRepo) Update(_ context.Context, tenantID string, _ *domemp.Employee) error {
	m.lastTenant = tenantID
	return m.updateErr
}

func (m *mockRepo) Delete(_ context.Context, tenantID, _ string) error {
	m.lastTenant = tenantID
	return m.deleteErr
}

func (m *mockRepo) Get(_ context.Context, tenantID, _ string) (domemp.Employee, error) {
	m.lastTenant = tenantID
	return m.getEmp, m.getErr
}

func (m *mockRepo) List(_ context.Context, tenantID string, offset, limit int) ([]domemp.Employee, int, error) {
	m.lastTenant = tenantID
	m.lastOffset = offset
	m.lastLimit = limit
	return m.listEmps, m.listTotal, m.listErr
}

type mockInvalidator struct {
	calls   int
	tenants []string
	evicted int
	err     error
}

func (m *mockInvalidator) InvalidateTenant(_ context.Context, tenantID string) (int, error) {
	m.calls++
	m.tenants = append(m.tenants, tenantID)
	return m.evicted, m.err
}

func validInput() Input {
	return Input{
		FirstName: "John",
		LastName:  "Smith",
		Title:     "Engineer",
		Email:     "john@acme.com",
		Skills:    []string{"go"},
		Active:    true,
	}
}

// --- Tests ---

func TestCreate_AssignsIDAndInvalidates(t *testing.T) {
	repo := &mockRepo{}
	inv := &mockInvalidator{evicted: 3}
	svc := New(repo, inv)

	emp, err := svc.Create(context.Background(), "acme", validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if emp.ID() == "" {
		t.Error("created employee must get an ID")
	}
	if inv.calls != 1 || inv.tenants[0] != "acme" {
		t.Errorf("expected one invalidation for acme, got %v", inv.tenants)
	}
}

func TestCreate_ValidationError(t *testing.T) {
	repo := &mockRepo{}
	inv := &mockInvalidator{}
	svc := New(repo, inv)

	in := validInput()
	in.Email = "broken"

	_, err := svc.Create(context.Background(), "acme", in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if inv.calls != 0 {
		t.Error("failed create must not invalidate the cache")
	}
}

func TestCreate_TenantRequired(t *testing.T) {
	svc := New(&mockRepo{}, &mockInvalidator{})

	if _, err := svc.Create(context.Background(), "", validInput()); !errors.Is(err, domain.ErrTenantRequired) {
		t.Fatalf("expected ErrTenantRequired, got %v", err)
	}
}

func TestCreate_MalformedTenant(t *testing.T) {
	repo := &mockRepo{}
	inv := &mockInvalidator{}
	svc := New(repo, inv)

	_, err := svc.Create(context.Background(), "a*", validInput())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.lastTenant != "" {
		t.Error("malformed tenant must never reach the repository")
	}
	if inv.calls != 0 {
		t.Error("malformed tenant must not invalidate the cache")
	}
}

func TestCreate_RepoConflict(t *testing.T) {
	repo := &mockRepo{createErr: domain.ErrAlreadyExists}
	inv := &mockInvalidator{}
	svc := New(repo, inv)

	_, err := svc.Create(context.Background(), "acme", validInput())
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if inv.calls != 0 {
		t.Error("failed create must not invalidate the cache")
	}
}

func TestUpdate_Invalidates(t *testing.T) {
	repo := &mockRepo{}
	inv := &mockInvalidator{}
	svc := New(repo, inv)

	emp, err := svc.Update(context.Background(), "acme", "e1", validInput())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if emp.ID() != "e1" {
		t.Errorf("ID() = %q, want e1", emp.ID())
	}
	if inv.calls != 1 {
		t.Errorf("expected 1 invalidation, got %d", inv.calls)
	}
}

func TestDelete_InvalidationFailureIsSoft(t *testing.T) {
	repo := &mockRepo{}
	inv := &mockInvalidator{err: errors.New("scan failed")}
	svc := New(repo, inv)

	if err := svc.Delete(context.Background(), "acme", "e1"); err != nil {
		t.Fatalf("invalidation failure must not fail the mutation: %v", err)
	}
	if inv.calls != 1 {
		t.Error("expected invalidation attempt")
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRepo{deleteErr: domain.ErrEmployeeNotFound}
	inv := &mockInvalidator{}
	svc := New(repo, inv)

	if err := svc.Delete(context.Background(), "acme", "ghost"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if inv.calls != 0 {
		t.Error("failed delete must not invalidate the cache")
	}
}

func TestGet_DoesNotInvalidate(t *testing.T) {
	repo := &mockRepo{getEmp: domemp.Reconstruct("e1", "John", "Smith", "", "", "j@x.com", "", nil, true)}
	inv := &mockInvalidator{}
	svc := New(repo, inv)

	emp, err := svc.Get(context.Background(), "acme", "e1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if emp.FirstName() != "John" {
		t.Errorf("FirstName() = %q", emp.FirstName())
	}
	if inv.calls != 0 {
		t.Error("reads must not invalidate the cache")
	}
}

func TestList_ClampsPagination(t *testing.T) {
	repo := &mockRepo{listTotal: 0}
	svc := New(repo, &mockInvalidator{})

	if _, _, err := svc.List(context.Background(), "acme", -1, 0); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastOffset != 0 {
		t.Errorf("offset = %d, want 0 for clamped page", repo.lastOffset)
	}
	if repo.lastLimit != DefaultPageSize {
		t.Errorf("limit = %d, want default %d", repo.lastLimit, DefaultPageSize)
	}

	if _, _, err := svc.List(context.Background(), "acme", 2, 1000); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastLimit != MaxPageSize {
		t.Errorf("limit = %d, want max %d", repo.lastLimit, MaxPageSize)
	}
	if repo.lastOffset != MaxPageSize {
		t.Errorf("offset = %d, want one full page", repo.lastOffset)
	}
}

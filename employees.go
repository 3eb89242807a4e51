package staffdex

import (
	"context"
	"fmt"

	domemp "github.com/stafflink/staffdex/internal/domain/employee"
	employeeuc "github.com/stafflink/staffdex/internal/usecase/employee"
)

// EmployeeService manages directory entries for a single tenant.
type EmployeeService struct {
	tenant string
	svc    *employeeuc.Service
}

// Employee is the public form of a directory entry.
type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Title      string
	Department string
	Email      string
	PhotoURL   string
	Skills     []string
	Active     bool
}

// Create stores a new employee and returns it with its assigned ID.
func (s *EmployeeService) Create(ctx context.Context, emp Employee) (Employee, error) {
	created, err := s.svc.Create(ctx, s.tenant, toInput(emp))
	if err != nil {
		return Employee{}, fmt.Errorf("create: %w", err)
	}
	return fromDomain(&created), nil
}

// Update overwrites an existing employee.
func (s *EmployeeService) Update(ctx context.Context, id string, emp Employee) (Employee, error) {
	updated, err := s.svc.Update(ctx, s.tenant, id, toInput(emp))
	if err != nil {
		return Employee{}, fmt.Errorf("update: %w", err)
	}
	return fromDomain(&updated), nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, s.tenant, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Get returns one employee by ID.
func (s *EmployeeService) Get(ctx context.Context, id string) (Employee, error) {
	emp, err := s.svc.Get(ctx, s.tenant, id)
	if err != nil {
		return Employee{}, fmt.Errorf("get: %w", err)
	}
	return fromDomain(&emp), nil
}

// List returns a page of the tenant's employees plus the total count.
func (s *EmployeeService) List(ctx context.Context, page, pageSize int) ([]Employee, int, error) {
	emps, total, err := s.svc.List(ctx, s.tenant, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	out := make([]Employee, len(emps))
	for i := range emps {
		out[i] = fromDomain(&emps[i])
	}
	return out, total, nil
}

func toInput(emp Employee) employeeuc.Input {
	return employeeuc.Input{
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Title:      emp.Title,
		Department: emp.Department,
		Email:      emp.Email,
		PhotoURL:   emp.PhotoURL,
		Skills:     emp.Skills,
		Active:     emp.Active,
	}
}

func fromDomain(e *domemp.Employee) Employee {
	return Employee{
		ID:         e.ID(),
		FirstName:  e.FirstName(),
		LastName:   e.LastName(),
		Title:      e.Title(),
		Department: e.Department(),
		Email:      e.Email(),
		PhotoURL:   e.PhotoURL(),
		Skills:     e.Skills(),
		Active:     e.Active(),
	}
}

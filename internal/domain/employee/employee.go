// Package employee defines the employee directory entry entity.
package employee

import (
	"fmt"
	"sort"
	"strings"
)

// Field length limits for directory entries.
const (
	MaxNameLength  = 100
	MaxTitleLength = 150
	MaxEmailLength = 254
	MaxSkills      = 50
)

// Employee is a validated directory entry scoped to one tenant.
type Employee struct {
	id         string
	firstName  string
	lastName   string
	title      string
	department string
	email      string
	photoURL   string
	skills     []string
	active     bool
}

// New validates and creates an Employee.
// Skills are lowercased, deduplicated, and sorted so that two logically equal
// skill sets compare (and index) identically.
func New(
	id, firstName, lastName, title, department, email, photoURL string,
	skills []string, active bool,
) (Employee, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(strings.ToLower(email))

	if id == "" {
		return Employee{}, fmt.Errorf("employee id is required")
	}
	if firstName == "" {
		return Employee{}, fmt.Errorf("first name is required")
	}
	if lastName == "" {
		return Employee{}, fmt.Errorf("last name is required")
	}
	if len(firstName) > MaxNameLength || len(lastName) > MaxNameLength {
		return Employee{}, fmt.Errorf("name too long (max %d chars)", MaxNameLength)
	}
	if len(title) > MaxTitleLength {
		return Employee{}, fmt.Errorf("title too long (max %d chars)", MaxTitleLength)
	}
	if email == "" {
		return Employee{}, fmt.Errorf("email is required")
	}
	if len(email) > MaxEmailLength || !strings.Contains(email[1:], "@") {
		return Employee{}, fmt.Errorf("invalid email %q", email)
	}
	if len(skills) > MaxSkills {
		return Employee{}, fmt.Errorf("too many skills (max %d)", MaxSkills)
	}

	return Employee{
		id:         id,
		firstName:  firstName,
		lastName:   lastName,
		title:      strings.TrimSpace(title),
		department: strings.TrimSpace(department),
		email:      email,
		photoURL:   strings.TrimSpace(photoURL),
		skills:     CanonicalSkills(skills),
		active:     active,
	}, nil
}

// Reconstruct rebuilds an Employee from storage without re-validation.
func Reconstruct(
	id, firstName, lastName, title, department, email, photoURL string,
	skills []string, active bool,
) Employee {
	return Employee{
		id:         id,
		firstName:  firstName,
		lastName:   lastName,
		title:      title,
		department: department,
		email:      email,
		photoURL:   photoURL,
		skills:     skills,
		active:     active,
	}
}

// CanonicalSkills lowercases, trims, deduplicates, and sorts a skill list.
func CanonicalSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// ID returns the employee identifier.
func (e *Employee) ID() string { return e.id }

// FirstName returns the first name.
func (e *Employee) FirstName() string { return e.firstName }

// LastName returns the last name.
func (e *Employee) LastName() string { return e.lastName }

// Title returns the job title.
func (e *Employee) Title() string { return e.title }

// Department returns the department name.
func (e *Employee) Department() string { return e.department }

// Email returns the lowercased email address.
func (e *Employee) Email() string { return e.email }

// PhotoURL returns the profile photo URL.
func (e *Employee) PhotoURL() string { return e.photoURL }

// Skills returns the canonical skill list.
func (e *Employee) Skills() []string { return e.skills }

// Active reports whether the employee is active.
func (e *Employee) Active() bool { return e.active }

package employee

import (
	"strings"

	domemp "github.com/stafflink/staffdex/internal/domain/employee"
)

// Hash field names for employee records. FieldSearch is a denormalized
// lowercase blob of every searchable attribute; the exact and partial
// strategies match against it.
const (
	FieldTenant     = "tenant"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldTitle      = "title"
	FieldDepartment = "department"
	FieldEmail      = "email"
	FieldPhotoURL   = "photo_url"
	FieldSkills     = "skills"
	FieldActive     = "active"
	FieldSearch     = "__search"
)

// ReturnFields lists the attributes fetched for search candidates.
var ReturnFields = []string{
	FieldFirstName, FieldLastName, FieldTitle, FieldDepartment,
	FieldEmail, FieldPhotoURL, FieldSkills, FieldActive,
}

const skillsSeparator = ","

// buildHashFields converts a domain Employee into a flat map for HSET.
func buildHashFields(tenantID string, emp *domemp.Employee) map[string]string {
	active := "false"
	if emp.Active() {
		active = "true"
	}
	return map[string]string{
		FieldTenant:     tenantID,
		FieldFirstName:  emp.FirstName(),
		FieldLastName:   emp.LastName(),
		FieldTitle:      emp.Title(),
		FieldDepartment: emp.Department(),
		FieldEmail:      emp.Email(),
		FieldPhotoURL:   emp.PhotoURL(),
		FieldSkills:     strings.Join(emp.Skills(), skillsSeparator),
		FieldActive:     active,
		FieldSearch:     buildSearchBlob(emp),
	}
}

// buildSearchBlob denormalizes the searchable attributes into one lowercase
// TEXT field. The email local part is included separately because the full
// address tokenizes poorly.
func buildSearchBlob(emp *domemp.Employee) string {
	localPart, _, _ := strings.Cut(emp.Email(), "@")
	parts := []string{
		emp.FirstName(), emp.LastName(), emp.Title(), emp.Department(), localPart,
	}
	parts = append(parts, emp.Skills()...)
	return strings.ToLower(strings.Join(nonEmpty(parts), " "))
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseHashFields converts a flat hash map back into a domain Employee.
func parseHashFields(id string, m map[string]string) domemp.Employee {
	var skills []string
	if raw := m[FieldSkills]; raw != "" {
		skills = strings.Split(raw, skillsSeparator)
	}
	return domemp.Reconstruct(
		id,
		m[FieldFirstName],
		m[FieldLastName],
		m[FieldTitle],
		m[FieldDepartment],
		m[FieldEmail],
		m[FieldPhotoURL],
		skills,
		m[FieldActive] == "true",
	)
}

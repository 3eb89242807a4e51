package employee

import (
	"reflect"
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	emp, err := New(
		"e1", "  John ", "Smith", " Engineer ", "Engineering",
		"John.Smith@Acme.COM", "https://img/1.png",
		[]string{"Go", "redis", "go"}, true,
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if emp.FirstName() != "John" {
		t.Errorf("FirstName() = %q, want trimmed %q", emp.FirstName(), "John")
	}
	if emp.Email() != "john.smith@acme.com" {
		t.Errorf("Email() = %q, want lowercased", emp.Email())
	}
	if emp.Title() != "Engineer" {
		t.Errorf("Title() = %q, want trimmed", emp.Title())
	}
	if want := []string{"go", "redis"}; !reflect.DeepEqual(emp.Skills(), want) {
		t.Errorf("Skills() = %v, want %v", emp.Skills(), want)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		build func() (Employee, error)
	}{
		{"missing id", func() (Employee, error) {
			return New("", "John", "Smith", "", "", "j@x.com", "", nil, true)
		}},
		{"missing first name", func() (Employee, error) {
			return New("e1", "  ", "Smith", "", "", "j@x.com", "", nil, true)
		}},
		{"missing last name", func() (Employee, error) {
			return New("e1", "John", "", "", "", "j@x.com", "", nil, true)
		}},
		{"missing email", func() (Employee, error) {
			return New("e1", "John", "Smith", "", "", "", "", nil, true)
		}},
		{"email without at sign", func() (Employee, error) {
			return New("e1", "John", "Smith", "", "", "not-an-email", "", nil, true)
		}},
		{"name too long", func() (Employee, error) {
			return New("e1", strings.Repeat("a", MaxNameLength+1), "Smith", "", "", "j@x.com", "", nil, true)
		}},
		{"title too long", func() (Employee, error) {
			return New("e1", "John", "Smith", strings.Repeat("t", MaxTitleLength+1), "", "j@x.com", "", nil, true)
		}},
		{"too many skills", func() (Employee, error) {
			skills := make([]string, MaxSkills+1)
			for i := range skills {
				skills[i] = "skill" + strings.Repeat("x", i+1)
			}
			return New("e1", "John", "Smith", "", "", "j@x.com", "", skills, true)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.build(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCanonicalSkills(t *testing.T) {
	got := CanonicalSkills([]string{" Redis ", "GO", "go", "", "kubernetes"})
	want := []string{"go", "kubernetes", "redis"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CanonicalSkills = %v, want %v", got, want)
	}

	if CanonicalSkills(nil) != nil {
		t.Error("nil input should stay nil")
	}
	if CanonicalSkills([]string{" ", ""}) != nil {
		t.Error("blank-only input should canonicalize to nil")
	}
}

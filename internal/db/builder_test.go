package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("test-idx").
		Prefix("emp:").
		Tag("tenant").
		Text("title").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "test-idx" {
		t.Errorf("name = %q, want test-idx", idx.Name)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "tenant" || idx.Fields[0].Type != IndexFieldTag {
		t.Errorf("field[0] = %+v, want tenant TAG", idx.Fields[0])
	}
	if idx.Fields[1].Name != "title" || idx.Fields[1].Type != IndexFieldText {
		t.Errorf("field[1] = %+v, want title TEXT", idx.Fields[1])
	}
}

func TestIndexBuilder_TextWeight(t *testing.T) {
	idx := NewIndex("w-idx").
		Prefix("emp:").
		TextWithWeight("first_name", 2).
		MustBuild()

	if idx.Fields[0].TextWeight != 2 {
		t.Errorf("weight = %g, want 2", idx.Fields[0].TextWeight)
	}
}

func TestIndexBuilder_TagOptions(t *testing.T) {
	idx := NewIndex("tag-idx").
		Prefix("t:").
		TagWithOpts("skills", ",", false).
		MustBuild()

	f := idx.Fields[0]
	if f.TagSeparator != "," {
		t.Errorf("separator = %q, want ,", f.TagSeparator)
	}
	if f.TagCaseSensitive {
		t.Error("expected TagCaseSensitive=false")
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("x").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "empty field name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Tag("").Build()
			},
			wantErr: "field name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldTag},
			{Name: "field1", Type: IndexFieldText},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Prefix("emp:").
		Tag("tenant").
		TextWithWeight("first_name", 2).
		MustBuild()

	s := idx.String()
	if !strings.HasPrefix(s, "FT.CREATE ") {
		t.Errorf("expected FT.CREATE prefix, got %q", s)
	}
	if !strings.Contains(s, "my-idx") {
		t.Error("missing index name in string output")
	}
	if !strings.Contains(s, "WEIGHT 2") {
		t.Errorf("missing text weight in %q", s)
	}
}

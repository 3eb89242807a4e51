package db

import "errors"

// IndexFieldType enumerates supported FT field types.
type IndexFieldType string

// Supported FT field types.
const (
	IndexFieldText IndexFieldType = "TEXT"
	IndexFieldTag  IndexFieldType = "TAG"
)

// IndexField describes one schema attribute of an FT index.
type IndexField struct {
	Name             string
	Type             IndexFieldType
	TextWeight       float64 // TEXT only; 0 means server default
	TagSeparator     string  // TAG only; "" means server default
	TagCaseSensitive bool    // TAG only
}

// IndexDefinition describes an FT index over hash keys.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// Validate checks the definition for structural correctness.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}
	seen := make(map[string]struct{}, len(idx.Fields))
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required")
		}
		if _, dup := seen[f.Name]; dup {
			return errors.New("duplicate field " + f.Name)
		}
		seen[f.Name] = struct{}{}
		switch f.Type {
		case IndexFieldText, IndexFieldTag:
		default:
			return errors.New("unsupported field type " + string(f.Type))
		}
	}
	return nil
}

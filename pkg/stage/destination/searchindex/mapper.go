package searchindex

import (
	"fmt"

	index "github.com/blank-1/datacollector/pkg/index"
	record "github.com/blank-1/datacollector/pkg/pipeline/core/record"
)

// FieldMappingError reports a record that could not be projected onto the
// index schema.
type FieldMappingError struct {
	FieldPath  string
	IndexField string
	Reason     string
}

func (e *FieldMappingError) Error() string {
	return fmt.Sprintf("cannot map field %s to index field %s: %s", e.FieldPath, e.IndexField, e.Reason)
}

// DocumentMapper projects records onto index documents according to an
// ordered field mapping table. Mapping is pure: it never touches the index
// and never mutates the record.
type DocumentMapper struct {
	mappings []FieldMapping
}

// NewDocumentMapper creates a mapper over the given mapping table.
func NewDocumentMapper(mappings []FieldMapping) *DocumentMapper {
	return &DocumentMapper{mappings: mappings}
}

// MapRecord produces the document for one record. Every mapping entry must
// resolve: a missing field or a field that has no index representation fails
// the whole record with a FieldMappingError.
func (m *DocumentMapper) MapRecord(r *record.Record) (index.Document, error) {
	doc := make(index.Document, len(m.mappings))
	for _, mapping := range m.mappings {
		f, ok := r.Get(mapping.Field)
		if !ok {
			return nil, &FieldMappingError{
				FieldPath:  mapping.Field,
				IndexField: mapping.IndexField,
				Reason:     "field not found in record",
			}
		}
		if f.Type == record.TypeMap {
			return nil, &FieldMappingError{
				FieldPath:  mapping.Field,
				IndexField: mapping.IndexField,
				Reason:     "map fields have no index representation",
			}
		}
		doc[mapping.IndexField] = f.Interface()
	}
	return doc, nil
}

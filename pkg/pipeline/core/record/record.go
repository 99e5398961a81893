// Package record defines the data model that moves through the pipeline:
// typed fields, records with a source header, and the batches a destination
// stage consumes.
package record

import (
	"fmt"
	"strings"
)

// Type enumerates the value types a Field can hold.
type Type string

const (
	TypeNull    Type = "NULL"
	TypeBoolean Type = "BOOLEAN"
	TypeInteger Type = "INTEGER"
	TypeFloat   Type = "FLOAT"
	TypeString  Type = "STRING"
	TypeList    Type = "LIST"
	TypeMap     Type = "MAP"
)

// Field is one typed value inside a record. List fields hold []Field and map
// fields hold map[string]Field; every other type holds the corresponding Go
// scalar.
type Field struct {
	Type  Type
	Value interface{}
}

// NewStringField creates a STRING field.
func NewStringField(v string) Field { return Field{Type: TypeString, Value: v} }

// NewIntegerField creates an INTEGER field.
func NewIntegerField(v int64) Field { return Field{Type: TypeInteger, Value: v} }

// NewFloatField creates a FLOAT field.
func NewFloatField(v float64) Field { return Field{Type: TypeFloat, Value: v} }

// NewBooleanField creates a BOOLEAN field.
func NewBooleanField(v bool) Field { return Field{Type: TypeBoolean, Value: v} }

// NewNullField creates a NULL field.
func NewNullField() Field { return Field{Type: TypeNull, Value: nil} }

// NewListField creates a LIST field from the given elements.
func NewListField(elems []Field) Field { return Field{Type: TypeList, Value: elems} }

// NewMapField creates a MAP field from the given entries.
func NewMapField(entries map[string]Field) Field { return Field{Type: TypeMap, Value: entries} }

// FieldFromValue converts an arbitrary decoded value (e.g. from JSON) into a
// Field, descending into maps and slices.
func FieldFromValue(v interface{}) (Field, error) {
	switch tv := v.(type) {
	case nil:
		return NewNullField(), nil
	case bool:
		return NewBooleanField(tv), nil
	case string:
		return NewStringField(tv), nil
	case int:
		return NewIntegerField(int64(tv)), nil
	case int64:
		return NewIntegerField(tv), nil
	case float64:
		return NewFloatField(tv), nil
	case []interface{}:
		elems := make([]Field, 0, len(tv))
		for _, e := range tv {
			f, err := FieldFromValue(e)
			if err != nil {
				return Field{}, err
			}
			elems = append(elems, f)
		}
		return NewListField(elems), nil
	case map[string]interface{}:
		entries := make(map[string]Field, len(tv))
		for k, e := range tv {
			f, err := FieldFromValue(e)
			if err != nil {
				return Field{}, err
			}
			entries[k] = f
		}
		return NewMapField(entries), nil
	default:
		return Field{}, fmt.Errorf("unsupported field value type %T", v)
	}
}

// Interface returns the field value as plain Go data, unwrapping nested
// fields so the result is JSON-serializable.
func (f Field) Interface() interface{} {
	switch f.Type {
	case TypeList:
		elems, _ := f.Value.([]Field)
		out := make([]interface{}, 0, len(elems))
		for _, e := range elems {
			out = append(out, e.Interface())
		}
		return out
	case TypeMap:
		entries, _ := f.Value.(map[string]Field)
		out := make(map[string]interface{}, len(entries))
		for k, e := range entries {
			out[k] = e.Interface()
		}
		return out
	default:
		return f.Value
	}
}

// Header carries record provenance. SourceID identifies the record within its
// origin (file offset, topic/partition/offset, etc.) and is what an operator
// sees when a record is attributed in an error.
type Header struct {
	SourceID   string
	Attributes map[string]string
}

// Record is one unit of structured data handed to a stage. Records are
// read-only to destination stages.
type Record struct {
	header Header
	root   Field
}

// New creates a Record with the given source identifier and root fields.
func New(sourceID string, root map[string]Field) *Record {
	return &Record{
		header: Header{SourceID: sourceID, Attributes: map[string]string{}},
		root:   NewMapField(root),
	}
}

// Header returns the record's header.
func (r *Record) Header() Header {
	return r.header
}

// SetAttribute sets a header attribute.
func (r *Record) SetAttribute(key, value string) {
	r.header.Attributes[key] = value
}

// Root returns the record's root field (always a MAP field).
func (r *Record) Root() Field {
	return r.root
}

// Get looks up the field at the given path (e.g. "/title" or "/meta/author").
// Path segments descend through MAP fields only; the second return value is
// false when any segment is absent or the path traverses a non-map field.
func (r *Record) Get(fieldPath string) (Field, bool) {
	trimmed := strings.Trim(fieldPath, "/")
	if trimmed == "" {
		return r.root, true
	}

	current := r.root
	for _, segment := range strings.Split(trimmed, "/") {
		entries, ok := current.Value.(map[string]Field)
		if current.Type != TypeMap || !ok {
			return Field{}, false
		}
		next, ok := entries[segment]
		if !ok {
			return Field{}, false
		}
		current = next
	}
	return current, true
}

// Has reports whether a field exists at the given path.
func (r *Record) Has(fieldPath string) bool {
	_, ok := r.Get(fieldPath)
	return ok
}

// Value returns the record's data as plain Go maps and slices, suitable for
// JSON serialization (used by error collectors).
func (r *Record) Value() map[string]interface{} {
	out, _ := r.root.Interface().(map[string]interface{})
	return out
}

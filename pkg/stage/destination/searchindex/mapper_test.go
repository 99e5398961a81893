package searchindex_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	searchindex "github.com/blank-1/datacollector/pkg/stage/destination/searchindex"
)

func TestMapRecord_ProjectsMappedFields(t *testing.T) {
	mapper := searchindex.NewDocumentMapper([]searchindex.FieldMapping{
		{Field: "/id", IndexField: "doc_id"},
		{Field: "/title", IndexField: "title"},
		{Field: "/meta/author", IndexField: "author"},
	})

	r := newTestRecord(t, "r1", map[string]interface{}{
		"id":    "r1",
		"title": "a title",
		"extra": "not mapped",
		"meta":  map[string]interface{}{"author": "someone"},
	})

	doc, err := mapper.MapRecord(r)

	require.NoError(t, err)
	assert.Equal(t, "r1", doc["doc_id"])
	assert.Equal(t, "a title", doc["title"])
	assert.Equal(t, "someone", doc["author"])
	// Unmapped record fields never leak into the document.
	assert.Len(t, doc, 3)
}

func TestMapRecord_MissingFieldFailsRecord(t *testing.T) {
	mapper := searchindex.NewDocumentMapper([]searchindex.FieldMapping{
		{Field: "/id", IndexField: "id"},
		{Field: "/absent", IndexField: "absent"},
	})

	r := newTestRecord(t, "r1", map[string]interface{}{"id": "r1"})

	doc, err := mapper.MapRecord(r)

	require.Error(t, err)
	assert.Nil(t, doc)
	var mapErr *searchindex.FieldMappingError
	require.True(t, errors.As(err, &mapErr))
	assert.Equal(t, "/absent", mapErr.FieldPath)
	assert.Equal(t, "absent", mapErr.IndexField)
}

func TestMapRecord_MapFieldHasNoIndexRepresentation(t *testing.T) {
	mapper := searchindex.NewDocumentMapper([]searchindex.FieldMapping{
		{Field: "/meta", IndexField: "meta"},
	})

	r := newTestRecord(t, "r1", map[string]interface{}{
		"meta": map[string]interface{}{"nested": true},
	})

	_, err := mapper.MapRecord(r)

	var mapErr *searchindex.FieldMappingError
	require.True(t, errors.As(err, &mapErr))
}

func TestMapRecord_ListFieldBecomesMultiValued(t *testing.T) {
	mapper := searchindex.NewDocumentMapper([]searchindex.FieldMapping{
		{Field: "/tags", IndexField: "tags"},
	})

	r := newTestRecord(t, "r1", map[string]interface{}{
		"tags": []interface{}{"go", "search"},
	})

	doc, err := mapper.MapRecord(r)

	require.NoError(t, err)
	assert.Equal(t, []interface{}{"go", "search"}, doc["tags"])
}

func TestMapRecord_DoesNotMutateRecord(t *testing.T) {
	mapper := searchindex.NewDocumentMapper([]searchindex.FieldMapping{
		{Field: "/id", IndexField: "renamed"},
	})

	r := newTestRecord(t, "r1", map[string]interface{}{"id": "r1"})
	doc, err := mapper.MapRecord(r)
	require.NoError(t, err)

	doc["renamed"] = "mutated"
	f, ok := r.Get("/id")
	require.True(t, ok)
	assert.Equal(t, "r1", f.Value)
}

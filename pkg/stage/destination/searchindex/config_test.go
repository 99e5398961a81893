package searchindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policy "github.com/blank-1/datacollector/pkg/pipeline/core/policy"
	searchindex "github.com/blank-1/datacollector/pkg/stage/destination/searchindex"
)

func validConfig() searchindex.Config {
	return searchindex.Config{
		Name:          "docs",
		InstanceType:  searchindex.SingleNode,
		URI:           "http://localhost:8983/solr/docs",
		IndexingMode:  searchindex.Batch,
		OnRecordError: policy.ToError,
		FieldMappings: []searchindex.FieldMapping{{Field: "/id", IndexField: "id"}},
	}
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_SingleNodeRequiresURI(t *testing.T) {
	cfg := validConfig()
	cfg.URI = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INDEX_00")
}

func TestValidate_ClusterRequiresNodeList(t *testing.T) {
	cfg := validConfig()
	cfg.InstanceType = searchindex.Cluster
	cfg.URI = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INDEX_01")
}

func TestValidate_EmbeddedRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.InstanceType = searchindex.Embedded
	cfg.URI = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INDEX_00")
}

func TestValidate_RequiresFieldMappings(t *testing.T) {
	cfg := validConfig()
	cfg.FieldMappings = nil

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INDEX_02")
}

func TestValidate_RejectsIncompleteMappingEntry(t *testing.T) {
	cfg := validConfig()
	cfg.FieldMappings = append(cfg.FieldMappings, searchindex.FieldMapping{Field: "/x"})

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INDEX_02")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := searchindex.Config{InstanceType: searchindex.SingleNode, IndexingMode: "BOGUS", OnRecordError: "BOGUS"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INDEX_00")
	assert.Contains(t, err.Error(), "INDEX_02")
	assert.Contains(t, err.Error(), "indexing mode")
	assert.Contains(t, err.Error(), "error policy")
}

func TestApplyDefaults(t *testing.T) {
	cfg := searchindex.Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, searchindex.SingleNode, cfg.InstanceType)
	assert.Equal(t, searchindex.Batch, cfg.IndexingMode)
	assert.Equal(t, policy.ToError, cfg.OnRecordError)
	assert.NotEmpty(t, cfg.Name)
}

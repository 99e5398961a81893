package searchindex_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bleveindex "github.com/blank-1/datacollector/pkg/index/bleve"
	metrics "github.com/blank-1/datacollector/pkg/pipeline/core/metrics"
	policy "github.com/blank-1/datacollector/pkg/pipeline/core/policy"
	record "github.com/blank-1/datacollector/pkg/pipeline/core/record"
	pipelinetest "github.com/blank-1/datacollector/pkg/pipeline/test"
	searchindex "github.com/blank-1/datacollector/pkg/stage/destination/searchindex"
)

// End-to-end check against a real embedded index: records go in, committed
// documents come out, and failed records land in the collector.
func TestTarget_WithEmbeddedIndex(t *testing.T) {
	cfg := searchindex.Config{
		Name:          "embedded-docs",
		InstanceType:  searchindex.Embedded,
		Path:          filepath.Join(t.TempDir(), "index.bleve"),
		IDField:       "id",
		IndexingMode:  searchindex.Batch,
		OnRecordError: policy.ToError,
		FieldMappings: testMappings,
	}

	client, err := searchindex.NewIndexClient(context.Background(), cfg)
	require.NoError(t, err)
	embedded, ok := client.(*bleveindex.Client)
	require.True(t, ok)

	collector := pipelinetest.NewCollectingErrorCollector()
	target := searchindex.NewTarget(cfg, client, collector,
		metrics.NewNoOpMetricRecorder(), metrics.NewNoOpTracer())

	require.NoError(t, target.Init(context.Background()))

	records := []*record.Record{
		newTestRecord(t, "r1", map[string]interface{}{"id": "r1", "title": "first"}),
		newTestRecord(t, "r2", map[string]interface{}{"id": "r2"}), // fails mapping
		newTestRecord(t, "r3", map[string]interface{}{"id": "r3", "title": "third"}),
	}
	require.NoError(t, target.Write(context.Background(), record.NewBatch("offset", records)))

	count, err := embedded.DocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
	assert.Equal(t, []string{"r2"}, collector.SourceIDs())

	require.NoError(t, target.Destroy())
}

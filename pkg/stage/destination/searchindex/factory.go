package searchindex

import (
	"context"

	index "github.com/blank-1/datacollector/pkg/index"
	bleveindex "github.com/blank-1/datacollector/pkg/index/bleve"
	solrindex "github.com/blank-1/datacollector/pkg/index/solr"
	exception "github.com/blank-1/datacollector/pkg/pipeline/support/util/exception"
)

// NewIndexClient builds the index client matching the configured instance
// type. Single node talks to one URI, cluster probes an explicit node list,
// embedded opens an in-process index at a filesystem path.
func NewIndexClient(ctx context.Context, cfg Config) (index.Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.InstanceType {
	case SingleNode:
		return solrindex.New(solrindex.Config{URI: cfg.URI, Timeout: cfg.Timeout}), nil
	case Cluster:
		client, err := solrindex.NewCluster(ctx, solrindex.Config{NodeURIs: cfg.NodeURIs, Timeout: cfg.Timeout})
		if err != nil {
			return nil, exception.NewStageErrorf(moduleName, ErrIndexUnreachable, err,
				"no reachable cluster node")
		}
		return client, nil
	case Embedded:
		client, err := bleveindex.New(bleveindex.Config{Path: cfg.Path, IDField: cfg.IDField})
		if err != nil {
			return nil, exception.NewStageErrorf(moduleName, ErrIndexUnreachable, err,
				"could not open embedded index at %s", cfg.Path)
		}
		return client, nil
	default:
		return nil, exception.NewStageErrorf(moduleName, ErrURIRequired, nil,
			"unknown instance type %q", cfg.InstanceType)
	}
}

package searchindex

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	policy "github.com/blank-1/datacollector/pkg/pipeline/core/policy"
	exception "github.com/blank-1/datacollector/pkg/pipeline/support/util/exception"
)

// InstanceType selects how the stage connects to the index.
type InstanceType string

const (
	// SingleNode connects to one index node by URI.
	SingleNode InstanceType = "SINGLE_NODE"
	// Cluster connects to a cluster given as an explicit node list and
	// settles on the first reachable node.
	Cluster InstanceType = "CLUSTER"
	// Embedded runs an in-process index at a filesystem path.
	Embedded InstanceType = "EMBEDDED"
)

// IndexingMode selects when mapped documents are handed to the index.
type IndexingMode string

const (
	// PerRecord submits each document as soon as it is mapped.
	PerRecord IndexingMode = "PER_RECORD"
	// Batch accumulates documents and submits them in one call per batch.
	Batch IndexingMode = "BATCH"
)

// FieldMapping projects one record field onto one index field.
type FieldMapping struct {
	// Field is the record field path, e.g. "/title".
	Field string `yaml:"field"`
	// IndexField is the destination field name in the index schema.
	IndexField string `yaml:"indexField"`
}

// Config holds the full configuration of the search index destination.
type Config struct {
	Name          string             `yaml:"name"`
	InstanceType  InstanceType       `yaml:"instanceType"`
	URI           string             `yaml:"uri"`
	NodeURIs      []string           `yaml:"nodeUris"`
	Path          string             `yaml:"path"`
	IDField       string             `yaml:"idField"`
	Timeout       time.Duration      `yaml:"timeout"`
	IndexingMode  IndexingMode       `yaml:"indexingMode"`
	OnRecordError policy.ErrorPolicy `yaml:"onRecordError"`
	FieldMappings []FieldMapping     `yaml:"fieldMappings"`
}

// ApplyDefaults fills unset optional settings.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = moduleName
	}
	if c.InstanceType == "" {
		c.InstanceType = SingleNode
	}
	if c.IndexingMode == "" {
		c.IndexingMode = Batch
	}
	if c.OnRecordError == "" {
		c.OnRecordError = policy.ToError
	}
}

// Validate checks the configuration before the stage starts. All problems
// are collected so an operator can fix them in one pass.
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.InstanceType {
	case SingleNode:
		if c.URI == "" {
			result = multierror.Append(result, exception.NewStageError(
				moduleName, ErrURIRequired, "a URI is required for a single node instance", nil))
		}
	case Cluster:
		if len(c.NodeURIs) == 0 {
			result = multierror.Append(result, exception.NewStageError(
				moduleName, ErrNodeListRequired, "a node URI list is required for a cluster instance", nil))
		}
	case Embedded:
		if c.Path == "" {
			result = multierror.Append(result, exception.NewStageError(
				moduleName, ErrURIRequired, "a filesystem path is required for an embedded instance", nil))
		}
	default:
		result = multierror.Append(result, exception.NewStageErrorf(
			moduleName, ErrURIRequired, nil, "unknown instance type %q", c.InstanceType))
	}

	if len(c.FieldMappings) == 0 {
		result = multierror.Append(result, exception.NewStageError(
			moduleName, ErrMappingRequired, "at least one field mapping is required", nil))
	}
	for i, m := range c.FieldMappings {
		if m.Field == "" || m.IndexField == "" {
			result = multierror.Append(result, exception.NewStageErrorf(
				moduleName, ErrMappingRequired, nil,
				"field mapping %d is incomplete: field=%q indexField=%q", i, m.Field, m.IndexField))
		}
	}

	switch c.IndexingMode {
	case PerRecord, Batch:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown indexing mode %q", c.IndexingMode))
	}
	if !c.OnRecordError.Valid() {
		result = multierror.Append(result, fmt.Errorf("unknown error policy %q", c.OnRecordError))
	}

	return result.ErrorOrNil()
}

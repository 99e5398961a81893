// Package bleve implements the index.Client contract on top of an embedded
// Bleve index. Submissions are staged in a Bleve batch and only become
// searchable when the batch is applied on Commit, which gives the embedded
// index the same transactional surface as a remote one.
package bleve

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/google/uuid"

	index "github.com/blank-1/datacollector/pkg/index"
)

// Config holds the settings for an embedded Bleve index.
type Config struct {
	// Path is the on-disk location of the index. It is created on first use.
	Path string `yaml:"path"`
	// IDField names the document field used as the index key. Documents
	// without it get a generated UUID.
	IDField string `yaml:"idField"`
}

// Client stages documents in a Bleve batch and applies them on commit.
type Client struct {
	idx     bleve.Index
	staged  *bleve.Batch
	idField string
}

// New opens the index at cfg.Path, creating it if absent.
func New(cfg Config) (*Client, error) {
	idx, err := openOrCreate(cfg.Path)
	if err != nil {
		return nil, err
	}
	c := &Client{idx: idx, idField: cfg.IDField}
	c.staged = idx.NewBatch()
	return c, nil
}

func openOrCreate(path string) (bleve.Index, error) {
	idx, err := bleve.Open(path)
	if err == nil {
		return idx, nil
	}
	if err != bleve.ErrorIndexPathDoesNotExist {
		return nil, fmt.Errorf("failed to open index at %s: %w", path, err)
	}
	idx, err = bleve.New(path, bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index at %s: %w", path, err)
	}
	return idx, nil
}

func (c *Client) documentID(doc index.Document) string {
	if c.idField != "" {
		if v, ok := doc[c.idField]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return uuid.NewString()
}

// SubmitOne stages a single document.
func (c *Client) SubmitOne(_ context.Context, doc index.Document) error {
	if err := c.staged.Index(c.documentID(doc), map[string]interface{}(doc)); err != nil {
		return &index.SubmissionError{Count: 1, Cause: err}
	}
	return nil
}

// SubmitMany stages a set of documents.
func (c *Client) SubmitMany(_ context.Context, docs []index.Document) error {
	for _, doc := range docs {
		if err := c.staged.Index(c.documentID(doc), map[string]interface{}(doc)); err != nil {
			return &index.SubmissionError{Count: len(docs), Cause: err}
		}
	}
	return nil
}

// Commit applies the staged batch to the index.
func (c *Client) Commit(_ context.Context) error {
	if err := c.idx.Batch(c.staged); err != nil {
		return &index.CommitError{Cause: err}
	}
	c.staged = c.idx.NewBatch()
	return nil
}

// Rollback discards everything staged since the last commit.
func (c *Client) Rollback(_ context.Context) error {
	c.staged = c.idx.NewBatch()
	return nil
}

// Ping verifies the index is usable.
func (c *Client) Ping(_ context.Context) error {
	_, err := c.idx.DocCount()
	return err
}

// Close closes the underlying index.
func (c *Client) Close() error {
	return c.idx.Close()
}

// DocCount returns the number of committed documents. Used by tests and the
// example application.
func (c *Client) DocCount() (uint64, error) {
	return c.idx.DocCount()
}

// Destroy closes the index and removes its files.
func (c *Client) Destroy(path string) error {
	if err := c.idx.Close(); err != nil {
		return err
	}
	return os.RemoveAll(path)
}

var _ index.Client = (*Client)(nil)

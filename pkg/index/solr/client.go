// Package solr implements the index.Client contract against Apache Solr's
// JSON update API. It supports a single node as well as a cluster given as an
// explicit node list, in which case the first reachable node is used.
package solr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	index "github.com/blank-1/datacollector/pkg/index"
	logger "github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the connection settings for a Solr index.
type Config struct {
	// URI is the base URI of a single node, including the collection path,
	// e.g. "http://solr:8983/solr/documents".
	URI string `yaml:"uri"`
	// NodeURIs lists the base URIs of a cluster's nodes. When set, the
	// client picks the first node that answers a ping.
	NodeURIs []string `yaml:"nodeUris"`
	// Timeout bounds each HTTP request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout"`
}

// Client talks to one Solr node over HTTP.
type Client struct {
	baseURI string
	http    *http.Client
}

// New creates a Solr client for a single node.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURI: strings.TrimRight(cfg.URI, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewCluster creates a Solr client for a node list, probing the nodes in
// order and settling on the first reachable one.
func NewCluster(ctx context.Context, cfg Config) (*Client, error) {
	var lastErr error
	for _, node := range cfg.NodeURIs {
		c := New(Config{URI: node, Timeout: cfg.Timeout})
		if err := c.Ping(ctx); err != nil {
			logger.Warnf("Solr node %s unreachable: %v", node, err)
			lastErr = err
			continue
		}
		return c, nil
	}
	return nil, fmt.Errorf("no reachable node in cluster %v: %w", cfg.NodeURIs, lastErr)
}

// SubmitOne stages a single document.
func (c *Client) SubmitOne(ctx context.Context, doc index.Document) error {
	if err := c.update(ctx, []index.Document{doc}); err != nil {
		return &index.SubmissionError{Count: 1, Cause: err}
	}
	return nil
}

// SubmitMany stages a set of documents in one request.
func (c *Client) SubmitMany(ctx context.Context, docs []index.Document) error {
	if err := c.update(ctx, docs); err != nil {
		return &index.SubmissionError{Count: len(docs), Cause: err}
	}
	return nil
}

// Commit makes staged documents durable and searchable.
func (c *Client) Commit(ctx context.Context) error {
	if err := c.command(ctx, `{"commit":{}}`); err != nil {
		return &index.CommitError{Cause: err}
	}
	return nil
}

// Rollback withdraws documents staged since the last commit.
func (c *Client) Rollback(ctx context.Context) error {
	if err := c.command(ctx, `{"rollback":{}}`); err != nil {
		return &index.RollbackError{Cause: err}
	}
	return nil
}

// Ping probes the node's ping handler.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURI+"/admin/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Close releases client resources.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// BaseURI returns the node URI the client settled on.
func (c *Client) BaseURI() string {
	return c.baseURI
}

func (c *Client) update(ctx context.Context, docs []index.Document) error {
	body, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode documents: %w", err)
	}
	return c.post(ctx, "/update", body)
}

func (c *Client) command(ctx context.Context, cmd string) error {
	return c.post(ctx, "/update", []byte(cmd))
}

func (c *Client) post(ctx context.Context, path string, body []byte) error {
	u, err := url.JoinPath(c.baseURI, path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("solr returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
}

var _ index.Client = (*Client)(nil)

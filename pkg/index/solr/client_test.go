package solr_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	index "github.com/blank-1/datacollector/pkg/index"
	solr "github.com/blank-1/datacollector/pkg/index/solr"
)

// fakeSolr records the update requests a client sends.
type fakeSolr struct {
	bodies   []string
	pings    int
	failWith int // when non-zero, update requests answer this status
}

func newFakeSolr() *fakeSolr {
	return &fakeSolr{}
}

func (f *fakeSolr) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/solr/docs/admin/ping":
			f.pings++
			w.WriteHeader(http.StatusOK)
		case "/solr/docs/update":
			body, _ := io.ReadAll(r.Body)
			f.bodies = append(f.bodies, string(body))
			if f.failWith != 0 {
				http.Error(w, "update rejected", f.failWith)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestClient(t *testing.T) (*solr.Client, *fakeSolr) {
	t.Helper()
	fake := newFakeSolr()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return solr.New(solr.Config{URI: srv.URL + "/solr/docs"}), fake
}

func TestSubmitMany_PostsDocumentArray(t *testing.T) {
	client, fake := newTestClient(t)

	docs := []index.Document{
		{"id": "a", "title": "first"},
		{"id": "b", "title": "second"},
	}
	require.NoError(t, client.SubmitMany(context.Background(), docs))

	require.Len(t, fake.bodies, 1)
	var sent []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(fake.bodies[0]), &sent))
	require.Len(t, sent, 2)
	assert.Equal(t, "a", sent[0]["id"])
	assert.Equal(t, "second", sent[1]["title"])
}

func TestCommitAndRollback_SendUpdateCommands(t *testing.T) {
	client, fake := newTestClient(t)

	require.NoError(t, client.SubmitOne(context.Background(), index.Document{"id": "a"}))
	require.NoError(t, client.Commit(context.Background()))
	require.NoError(t, client.Rollback(context.Background()))

	require.Len(t, fake.bodies, 3)
	assert.JSONEq(t, `{"commit":{}}`, fake.bodies[1])
	assert.JSONEq(t, `{"rollback":{}}`, fake.bodies[2])
}

func TestSubmit_WrapsHTTPErrorAsSubmissionError(t *testing.T) {
	client, fake := newTestClient(t)
	fake.failWith = http.StatusBadRequest

	err := client.SubmitMany(context.Background(), []index.Document{{"id": "a"}, {"id": "b"}})

	var subErr *index.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, 2, subErr.Count)
	assert.Contains(t, subErr.Error(), "400")
}

func TestCommit_WrapsHTTPErrorAsCommitError(t *testing.T) {
	client, fake := newTestClient(t)
	fake.failWith = http.StatusInternalServerError

	err := client.Commit(context.Background())

	var commitErr *index.CommitError
	require.True(t, errors.As(err, &commitErr))
}

func TestPing_ProbesAdminHandler(t *testing.T) {
	client, fake := newTestClient(t)

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, 1, fake.pings)
}

func TestNewCluster_SettlesOnFirstReachableNode(t *testing.T) {
	fake := newFakeSolr()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURI := dead.URL + "/solr/docs"
	dead.Close()

	client, err := solr.NewCluster(context.Background(), solr.Config{
		NodeURIs: []string{deadURI, srv.URL + "/solr/docs"},
	})

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/solr/docs", client.BaseURI())
}

func TestNewCluster_FailsWhenNoNodeAnswers(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURI := dead.URL + "/solr/docs"
	dead.Close()

	_, err := solr.NewCluster(context.Background(), solr.Config{NodeURIs: []string{deadURI}})
	require.Error(t, err)
}

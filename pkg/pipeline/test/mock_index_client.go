package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	index "github.com/blank-1/datacollector/pkg/index"
)

// MockIndexClient is a mock implementation of the index.Client interface.
// It records submissions, commits and rollbacks so tests can assert on the
// exact sequence of index operations a stage performs.
type MockIndexClient struct {
	mock.Mock
}

// SubmitOne mocks the SubmitOne method of index.Client.
// It records the call and returns the predefined error.
func (m *MockIndexClient) SubmitOne(ctx context.Context, doc index.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// SubmitMany mocks the SubmitMany method of index.Client.
// It records the call and returns the predefined error.
func (m *MockIndexClient) SubmitMany(ctx context.Context, docs []index.Document) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

// Commit mocks the Commit method of index.Client.
// It records the call and returns the predefined error.
func (m *MockIndexClient) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Rollback mocks the Rollback method of index.Client.
// It records the call and returns the predefined error.
func (m *MockIndexClient) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping mocks the Ping method of index.Client.
// It records the call and returns the predefined error.
func (m *MockIndexClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the Close method of index.Client.
// It records the call and returns the predefined error.
func (m *MockIndexClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Ensure that MockIndexClient implements the index.Client interface.
var _ index.Client = (*MockIndexClient)(nil)

package testutils

import (
	"context"

	"github.com/ledgerlens/ledgerlens/pkg/vector"
)

// MockVectorDriver is a test vector driver with canned query results.
type MockVectorDriver struct {
	Documents []vector.Document

	// Results is returned by Query (truncated to topK).
	Results []vector.QueryResult

	// QueryErr is returned by Query when set.
	QueryErr error
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{}
}

func (m *MockVectorDriver) Add(_ context.Context, docs []vector.Document) error {
	m.Documents = append(m.Documents, docs...)
	return nil
}

func (m *MockVectorDriver) Query(_ context.Context, _ []float32, topK int) ([]vector.QueryResult, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	if topK > 0 && topK < len(m.Results) {
		return m.Results[:topK], nil
	}
	return m.Results, nil
}

func (m *MockVectorDriver) Count(_ context.Context) (int, error) {
	return len(m.Documents), nil
}

func (m *MockVectorDriver) Close() error {
	return nil
}

var _ vector.Driver = (*MockVectorDriver)(nil)

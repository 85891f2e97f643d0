package testutils

import (
	"context"

	"github.com/ledgerlens/ledgerlens/pkg/llm"
)

// MockGenerator is a test generator with a canned response.
type MockGenerator struct {
	// Response is returned by Generate.
	Response string

	// FailWith is returned by Generate when set.
	FailWith error

	// Prompts records every prompt passed to Generate.
	Prompts []string
}

func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

func (m *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)

	if m.FailWith != nil {
		return "", m.FailWith
	}

	return m.Response, nil
}

func (m *MockGenerator) Close() error {
	return nil
}

var _ llm.Generator = (*MockGenerator)(nil)

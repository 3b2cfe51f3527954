package api

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of AssistantClient for testing
type MockClient struct {
	// Mock return values
	Reply string
	Err   error

	// ReplyFunc, when set, takes precedence over Reply and Err
	ReplyFunc func(ctx context.Context, message string) (string, error)

	mu       sync.Mutex
	messages []string
}

// Ensure MockClient implements AssistantClient
var _ AssistantClient = (*MockClient)(nil)

// Send records message and returns the configured reply
func (m *MockClient) Send(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.messages = append(m.messages, message)
	fn := m.ReplyFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message)
	}
	return m.Reply, m.Err
}

// Calls returns the number of Send calls
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// LastMessage returns the message of the most recent Send call
func (m *MockClient) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return ""
	}
	return m.messages[len(m.messages)-1]
}

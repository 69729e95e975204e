package notification

import (
	"context"
	"sync"
)

// MockDispatcher is a test implementation of Dispatcher that records sends.
type MockDispatcher struct {
	SendFunc func(ctx context.Context, customerID, template string, data map[string]any) error

	mu    sync.Mutex
	sends []Sent
}

// Sent records one dispatched notification.
type Sent struct {
	CustomerID string
	Template   string
	Data       map[string]any
}

// Send records the notification and delegates to the configured function.
func (m *MockDispatcher) Send(ctx context.Context, customerID, template string, data map[string]any) error {
	m.mu.Lock()
	m.sends = append(m.sends, Sent{CustomerID: customerID, Template: template, Data: data})
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, customerID, template, data)
	}
	return nil
}

// Sends returns a copy of all recorded notifications.
func (m *MockDispatcher) Sends() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sent, len(m.sends))
	copy(out, m.sends)
	return out
}

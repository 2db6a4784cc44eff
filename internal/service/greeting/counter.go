package greeting

import (
	"context"
	"sync/atomic"
)

// CounterService implements Service with an in-memory counter. The zero value is ready to use;
// the counter lives as long as the instance and is never persisted.
type CounterService struct {
	counter atomic.Int64
}

// NewCounterService returns a service whose first greeting has ID 1.
func NewCounterService() *CounterService {
	return &CounterService{}
}

// Greet issues the next ID and greets name verbatim. An empty name is replaced by DefaultName.
func (s *CounterService) Greet(_ context.Context, name string) Greeting {
	if name == "" {
		name = DefaultName
	}
	return Greeting{
		ID:      s.counter.Add(1),
		Content: "Hello, " + name,
	}
}

// Issued reports how many greetings have been issued so far.
func (s *CounterService) Issued() int64 {
	return s.counter.Load()
}

var _ Service = (*CounterService)(nil)

package tx

import (
	"context"
	"sync"
)

// Manager wraps a unit of work that spans more than one adapter.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// Serial runs units of work one at a time, giving the profile store a single writer.
type Serial struct {
	mu sync.Mutex
}

func (s *Serial) Within(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

// Package memory is the default repository backend: every collection lives in
// process memory and values are cloned on the way in and out, so callers
// never share slices with the store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"hostel_portal/internal/domain"
)

type Store[T domain.Entity[T]] struct {
	mu    sync.RWMutex
	kind  string
	items map[string]T
	order []string
}

func New[T domain.Entity[T]](kind string, seed ...T) *Store[T] {
	s := &Store[T]{kind: kind, items: make(map[string]T, len(seed))}
	for _, v := range seed {
		s.put(v)
	}
	return s
}

func (s *Store[T]) put(v T) {
	k := v.Key()
	if _, ok := s.items[k]; !ok {
		s.order = append(s.order, k)
	}
	s.items[k] = v.Clone()
}

// List returns every record in insertion order.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.items[k].Clone())
	}
	return out, nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok {
		return zero, fmt.Errorf("%s %q: %w", s.kind, id, domain.ErrNotFound)
	}
	return v.Clone(), nil
}

// Upsert replaces the record with the same key in place, or appends it.
func (s *Store[T]) Upsert(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.Key() == "" {
		return fmt.Errorf("%w: %s without id", domain.ErrInvalidInput, s.kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(v)
	return nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%s %q: %w", s.kind, id, domain.ErrNotFound)
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == id })
	return nil
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

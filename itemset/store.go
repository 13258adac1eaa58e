package itemset

import (
	"context"
	"sync"
)

/*
Store is an interface to manage a store where mined patterns can be
saved, retrieved and listed.

All its methods take a context that may allow cancelling the
operation (thus forcing the return of an error) if the implementation
allows it.
*/
type Store interface {
	// Put takes a pattern and saves it on the store, replacing
	// any pattern already saved for the same set of items. It
	// returns an error if the pattern cannot be saved.
	Put(ctx context.Context, p *Pattern) error
	// Get takes a slice of item labels and returns the pattern
	// saved for that set of items (or nil if there is none) or an
	// error if the store cannot be queried.
	Get(ctx context.Context, items []string) (*Pattern, error)
	// Read returns a channel on which every pattern in the store
	// is sent, and an error channel on which at most one error is
	// sent before both channels are closed.
	Read(ctx context.Context) (<-chan *Pattern, <-chan error)
	// Close closes the store, implementations should free any
	// resources in use as well as ensure any pending changes are
	// applied before returning (unless the context expires).
	Close(ctx context.Context) error
}

type memoryStore struct {
	patterns map[string]*Pattern
	lock     *sync.RWMutex
}

// NewMemoryStore returns an implementation of Store with the process
// memory space as underlying backend.
func NewMemoryStore() Store {
	return &memoryStore{
		patterns: make(map[string]*Pattern),
		lock:     &sync.RWMutex{},
	}
}

func (ms *memoryStore) Put(ctx context.Context, p *Pattern) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.patterns[p.Key()] = p
		return nil
	})
}

func (ms *memoryStore) Get(ctx context.Context, items []string) (*Pattern, error) {
	var p *Pattern
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		p = ms.patterns[Key(items)]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (ms *memoryStore) Read(ctx context.Context) (<-chan *Pattern, <-chan error) {
	patterns := make(chan *Pattern)
	errs := make(chan error, 1)
	go func() {
		var listed []*Pattern
		err := ms.withRLock(ctx, func(ctx context.Context) error {
			listed = make([]*Pattern, 0, len(ms.patterns))
			for _, p := range ms.patterns {
				listed = append(listed, p)
			}
			return nil
		})
		if err == nil {
			for _, p := range listed {
				select {
				case <-ctx.Done():
					err = ctx.Err()
				case patterns <- p:
				}
				if err != nil {
					break
				}
			}
		}
		if err != nil {
			errs <- err
		}
		close(errs)
		close(patterns)
	}()
	return patterns, errs
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}

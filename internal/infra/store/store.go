// Package store provides the persistent document store behind the
// progression engine: named JSON documents with deep-merge-on-write
// semantics and push notifications to subscribers.
// The engine treats writes as fire-and-forget — the in-memory draft stays
// authoritative until a write succeeds, so a failed write is retryable
// without data loss.
package store

import "sync"

// Store is the document-store contract the engine is written against.
type Store interface {
	// Get returns the document for key, or nil when absent.
	Get(key string) (map[string]any, error)
	// Set writes a document. With merge=true the partial is deep-merged
	// into the existing document (concurrent writers touching disjoint
	// subtrees do not clobber each other; same-leaf writes are
	// last-write-wins). With merge=false the document is replaced.
	Set(key string, doc map[string]any, merge bool) error
	// Keys lists all stored document keys with the given prefix.
	Keys(prefix string) ([]string, error)
	// Subscribe registers a push callback fired after every successful
	// write to key. The returned function unsubscribes.
	Subscribe(key string, fn func(map[string]any)) func()
	Close() error
}

// subscribers is the shared push-notification mechanism for both
// implementations.
type subscribers struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func(map[string]any)
}

func newSubscribers() *subscribers {
	return &subscribers{subs: map[string]map[int]func(map[string]any){}}
}

func (s *subscribers) add(key string, fn func(map[string]any)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[key] == nil {
		s.subs[key] = map[int]func(map[string]any){}
	}
	id := s.next
	s.next++
	s.subs[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

func (s *subscribers) notify(key string, doc map[string]any) {
	s.mu.Lock()
	fns := make([]func(map[string]any), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(doc)
	}
}

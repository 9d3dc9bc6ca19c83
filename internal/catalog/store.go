package catalog

import "sync/atomic"

// Store holds the current catalog behind an atomic pointer. Reads stay
// lock-free; a reload builds a complete new catalog and swaps it in whole.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store seeded with the given catalog.
func NewStore(cat *Catalog) *Store {
	s := &Store{}
	s.current.Store(cat)
	return s
}

// Get returns the current catalog.
func (s *Store) Get() *Catalog {
	return s.current.Load()
}

// Swap replaces the current catalog.
func (s *Store) Swap(cat *Catalog) {
	s.current.Store(cat)
}

// Package memstore is an in-memory persist.KV. It backs the "memory"
// driver and doubles as the fake in tests; GetErr and PutErr inject
// backend failures.
package memstore

import (
	"github.com/Makepad-fr/dayplan/internal/persist"
)

var _ persist.KV = (*Store)(nil)

type Store struct {
	m map[string][]byte

	// Error injection for testing
	GetErr error
	PutErr error

	Puts int // successful Put calls
}

func New() *Store {
	return &Store{m: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	v, ok := s.m[key]
	if !ok {
		return nil, persist.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Put(key string, value []byte) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.m[key] = append([]byte(nil), value...)
	s.Puts++
	return nil
}

// Set seeds a raw value, bypassing error injection.
func (s *Store) Set(key string, value []byte) { s.m[key] = value }

func (s *Store) Close() error { return nil }

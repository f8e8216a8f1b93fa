package session

import (
	"bytes"
	"context"
	"encoding/gob"
	"sync"
	"time"
)

// MemoryStore keeps sessions gob-encoded in a map, so that loaded records
// never alias stored ones.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]entry
}

type entry struct {
	updatedAt time.Time
	state     []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]entry)}
}

func encode(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *MemoryStore) Create(_ context.Context, rec *Record) error {
	b, err := encode(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[rec.ID]; ok {
		return ErrExists
	}
	s.data[rec.ID] = entry{rec.UpdatedAt, b}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var rec Record
	if err := gob.NewDecoder(bytes.NewReader(e.state)).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	b, err := encode(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[rec.ID]; !ok {
		return ErrNotFound
	}
	s.data[rec.ID] = entry{rec.UpdatedAt, b}
	return nil
}

// Deletes id without checking if it existed.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// DeleteStale drops sessions last saved before the given time.
func (s *MemoryStore) DeleteStale(_ context.Context, before time.Time) (n int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.data {
		if e.updatedAt.Before(before) {
			delete(s.data, id)
			n++
		}
	}
	return
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

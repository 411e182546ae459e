package jobs

import (
	"sort"
	"strings"
	"sync"
)

// Store is the in-memory source of truth for job records.
//
// It is safe for concurrent use by any number of polling readers and the
// runner worker goroutines. Records live for the life of the process; there
// is no eviction. List exists so a reaping pass can be layered on later.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewStore() *Store {
	return &Store{records: make(map[string]Record)}
}

// Put upserts the record for record.ID, overwrite-wins, with one exception:
// a terminal record is never replaced. The first terminal write for a job
// is also its last.
func (s *Store) Put(record Record) {
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[id]; ok && existing.Status.Terminal() {
		return
	}
	s.records[id] = record
}

// Get returns the record for jobID, or the Unknown sentinel if no such job
// was ever submitted. Get never blocks on a running job.
func (s *Store) Get(jobID string) Record {
	jobID = strings.TrimSpace(jobID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[jobID]; ok {
		return record
	}
	return Unknown(jobID)
}

// List returns all records, newest first.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

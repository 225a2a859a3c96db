package directory

import (
	"context"
	"fmt"
	"sync"
)

// Static is an in-memory directory, used for dry runs and tests.
type Static struct {
	mu      sync.RWMutex
	records map[string]NodeRecord
}

// NewStatic returns a directory serving the given records, keyed by Name.
func NewStatic(records ...NodeRecord) *Static {
	s := &Static{records: make(map[string]NodeRecord, len(records))}
	for _, r := range records {
		s.records[r.Name] = r
	}
	return s
}

// Put adds or replaces a record.
func (s *Static) Put(r NodeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.Name] = r
}

// GetNodeRecord implements Directory.
func (s *Static) GetNodeRecord(ctx context.Context, name string) (*NodeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	r, ok := s.records[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &r, nil
}

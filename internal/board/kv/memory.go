package kv

// MemoryStore keeps values in process memory.
// FailWrites, when set, is returned by every Set without storing anything.
type MemoryStore struct {
	values     map[string]string
	writes     int
	closed     bool
	FailWrites error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	if s.closed {
		return ErrClosed
	}
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.values[key] = value
	s.writes++
	return nil
}

func (s *MemoryStore) Close() error {
	s.closed = true
	return nil
}

// Writes returns the number of successful Set calls
func (s *MemoryStore) Writes() int {
	return s.writes
}

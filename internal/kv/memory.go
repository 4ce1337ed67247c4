package kv

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value for key.
func (m *Memory) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory) Delete(key string) error {
	delete(m.values, key)
	return nil
}

// Clear removes every key.
func (m *Memory) Clear() error {
	clear(m.values)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	return len(m.values)
}

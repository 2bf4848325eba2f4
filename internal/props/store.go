package props

import "fmt"

type Property struct {
	Name  string
	Value Value
}

// Kind is the property's type tag. It always matches the value's kind.
func (p Property) Kind() Kind { return p.Value.Kind() }

// Store is an ordered name → Property mapping. Not safe for concurrent use.
type Store struct {
	keys  []string
	index map[string]int
	data  []Property
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// FromPairs builds a store from alternating name/value arguments, e.g.
// FromPairs("velocity", 710.0, "distance", 100.0).
func FromPairs(pairs ...any) (*Store, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("props: odd number of pair arguments (%d)", len(pairs))
	}
	st := NewStore()
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("props: pair %d: name must be a string, got %T", i/2, pairs[i])
		}
		v, err := Of(pairs[i+1])
		if err != nil {
			return nil, fmt.Errorf("props: pair %q: %w", name, err)
		}
		st.Add(name, v)
	}
	return st, nil
}

// FromMap builds a store from m using keys for ordering. Keys missing from m
// are skipped.
func FromMap(keys []string, m map[string]Value) *Store {
	st := NewStore()
	for _, k := range keys {
		if v, ok := m[k]; ok {
			st.Add(k, v)
		}
	}
	return st
}

// Add inserts or overwrites name. An overwrite keeps the original position.
func (s *Store) Add(name string, v Value) {
	if i, ok := s.index[name]; ok {
		s.data[i].Value = v
		return
	}
	s.index[name] = len(s.data)
	s.keys = append(s.keys, name)
	s.data = append(s.data, Property{Name: name, Value: v})
}

func (s *Store) Remove(name string) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	s.keys = append(s.keys[:i], s.keys[i+1:]...)
	s.data = append(s.data[:i], s.data[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.keys); j++ {
		s.index[s.keys[j]] = j
	}
	return nil
}

func (s *Store) Get(name string) (Value, error) {
	v, ok := s.Lookup(name)
	if !ok {
		return None(), fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	return v, nil
}

func (s *Store) Lookup(name string) (Value, bool) {
	i, ok := s.index[name]
	if !ok {
		return None(), false
	}
	return s.data[i].Value, true
}

// Set writes v under an existing name. The type tag follows v, not the
// previous entry.
func (s *Store) Set(name string, v Value) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	s.data[i] = Property{Name: name, Value: v}
	return nil
}

func (s *Store) Kind(name string) Kind {
	v, _ := s.Lookup(name)
	return v.Kind()
}

func (s *Store) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Store) Len() int { return len(s.data) }

func (s *Store) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *Store) Properties() []Property {
	out := make([]Property, len(s.data))
	copy(out, s.data)
	return out
}

// Map snapshots the current values by name.
func (s *Store) Map() map[string]Value {
	m := make(map[string]Value, len(s.data))
	for _, p := range s.data {
		m[p.Name] = p.Value
	}
	return m
}

func (s *Store) Clone() *Store {
	c := NewStore()
	for _, p := range s.data {
		c.Add(p.Name, p.Value)
	}
	return c
}

package layout

import (
	"fmt"
	"slices"
	"sync"
)

// UniformSet is an editable, ordered uniform declaration. Fields can be added or removed
// anywhere; the packed layout is recomputed on the next Layout call and cached until the
// declaration changes again.
type UniformSet struct {
	mu     *sync.Mutex
	fields []UniformField
	cached *UniformLayout
}

// NewUniformSet creates a set holding fields in order.
//
// Parameters:
//   - fields: initial declaration
//
// Returns:
//   - *UniformSet: the set
func NewUniformSet(fields ...UniformField) *UniformSet {
	return &UniformSet{
		mu:     &sync.Mutex{},
		fields: slices.Clone(fields),
	}
}

// Append adds f at the end of the declaration.
//
// Returns:
//   - error: ErrDuplicateField if a field with the same name exists
func (s *UniformSet) Append(f UniformField) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertAt(len(s.fields), f)
}

// InsertBefore adds f immediately before the field called name.
//
// Returns:
//   - error: ErrUnknownField or ErrDuplicateField
func (s *UniformSet) InsertBefore(name string, f UniformField) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(name)
	if err != nil {
		return err
	}
	return s.insertAt(i, f)
}

// InsertAfter adds f immediately after the field called name.
//
// Returns:
//   - error: ErrUnknownField or ErrDuplicateField
func (s *UniformSet) InsertAfter(name string, f UniformField) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(name)
	if err != nil {
		return err
	}
	return s.insertAt(i+1, f)
}

// Remove deletes the field called name.
//
// Returns:
//   - error: ErrUnknownField if no such field exists
func (s *UniformSet) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(name)
	if err != nil {
		return err
	}
	s.fields = slices.Delete(s.fields, i, i+1)
	s.cached = nil
	return nil
}

// Fields returns a copy of the current declaration.
func (s *UniformSet) Fields() []UniformField {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.fields)
}

// Layout returns the packed layout of the current declaration, packing it if it changed
// since the previous call.
//
// Returns:
//   - UniformLayout: the packed layout
//   - error: any PackUniforms error
func (s *UniformSet) Layout() (UniformLayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return *s.cached, nil
	}
	ul, err := PackUniforms(s.fields)
	if err != nil {
		return UniformLayout{}, err
	}
	s.cached = &ul
	return ul, nil
}

// --- internal helpers ---

// indexOf returns the position of name. Caller must hold the mutex.
func (s *UniformSet) indexOf(name string) (int, error) {
	i := slices.IndexFunc(s.fields, func(f UniformField) bool { return f.Name == name })
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return i, nil
}

// insertAt places f at position i and drops the cached layout. Caller must hold the mutex.
func (s *UniformSet) insertAt(i int, f UniformField) error {
	if _, err := s.indexOf(f.Name); err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
	}
	s.fields = slices.Insert(s.fields, i, f)
	s.cached = nil
	return nil
}

package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrNotFound is returned when a design id does not exist in the store.
var ErrNotFound = errors.New("design not found")

// Store persists designs as a single JSON document on disk. All methods are
// safe for concurrent use; writes go through a temp file and rename.
type Store struct {
	mu      sync.Mutex
	path    string
	designs map[int]Design
	nextID  int
}

// Open loads the store at path, creating an empty one if the file is missing.
func Open(path string) (*Store, error) {
	s := &Store{path: path, designs: make(map[int]Design), nextID: 1}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read designs file: %w", err)
	}

	var list []Design
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse designs file: %w", err)
	}
	for _, d := range list {
		d.Normalize()
		s.designs[d.ID] = d
		if d.ID >= s.nextID {
			s.nextID = d.ID + 1
		}
	}
	return s, nil
}

// List returns all designs ordered by id.
func (s *Store) List() []Design {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Design, 0, len(s.designs))
	for _, d := range s.designs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the design with the given id.
func (s *Store) Get(id int) (Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.designs[id]
	if !ok {
		return Design{}, ErrNotFound
	}
	return d, nil
}

// Create assigns the next free id and persists the design.
func (s *Store) Create(d Design) (Design, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return Design{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = s.nextID
	s.nextID++
	s.designs[d.ID] = d
	if err := s.persist(); err != nil {
		delete(s.designs, d.ID)
		s.nextID--
		return Design{}, err
	}
	return d, nil
}

// Update replaces the design with the given id. The id itself is stable and
// cannot be changed by an update.
func (s *Store) Update(id int, d Design) (Design, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return Design{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.designs[id]
	if !ok {
		return Design{}, ErrNotFound
	}
	d.ID = id
	s.designs[id] = d
	if err := s.persist(); err != nil {
		s.designs[id] = prev
		return Design{}, err
	}
	return d, nil
}

// Delete removes the design with the given id.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.designs[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.designs, id)
	if err := s.persist(); err != nil {
		s.designs[id] = prev
		return err
	}
	return nil
}

// persist writes the current design set to disk. Caller holds s.mu.
func (s *Store) persist() error {
	list := make([]Design, 0, len(s.designs))
	for _, d := range s.designs {
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode designs: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create designs dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write designs file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace designs file: %w", err)
	}
	return nil
}

// Package store is the in-memory entity store backing the generated CRUD
// layer. Entities live in named collections keyed by id and implicitly carry
// id, created_at and updated_at, managed here rather than by client input.
//
// A single coarse lock keeps create/update/delete atomic per entity. There
// are no cross-entity transactions and no persistence.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/oj"
)

// Entity is one stored record. Data holds the client document; the id key
// inside Data is kept in sync with ID.
type Entity struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Data      map[string]any
}

// Snapshot returns an independent copy of the entity document with the
// managed metadata fields merged in.
func (e *Entity) Snapshot() map[string]any {
	out := cloneMap(e.Data)
	out["id"] = e.ID
	out["created_at"] = e.CreatedAt.UTC().Format(time.RFC3339)
	out["updated_at"] = e.UpdatedAt.UTC().Format(time.RFC3339)
	return out
}

// collection preserves insertion order so listings are deterministic.
type collection struct {
	order []string
	items map[string]*Entity
}

// Store is an in-process entity store. The zero value is not usable; call
// New. Construct one instance per process (or per test) and pass it by
// handle into the HTTP layer.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	now         func() time.Time
}

func New() *Store {
	return &Store{
		collections: make(map[string]*collection),
		now:         time.Now,
	}
}

// List returns one page of entities in insertion order plus the total count
// of the collection before paging.
func (s *Store) List(col string, skip, limit int) ([]map[string]any, int, error) {
	if skip < 0 {
		return nil, 0, &InvalidInputError{Message: "skip must not be negative"}
	}
	if limit <= 0 {
		return nil, 0, &InvalidInputError{Message: "limit must be positive"}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collections[col]
	if c == nil {
		return []map[string]any{}, 0, nil
	}

	total := len(c.order)
	items := make([]map[string]any, 0, limit)
	for i := skip; i < total && len(items) < limit; i++ {
		items = append(items, c.items[c.order[i]].Snapshot())
	}
	return items, total, nil
}

// Get returns the entity with the given id.
func (s *Store) Get(col, id string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.lookup(col, id)
	if err != nil {
		return nil, err
	}
	return e.Snapshot(), nil
}

// Create stores a new entity. A missing or empty id gets a generated UUID;
// a client-supplied id that already exists is a collision error.
func (s *Store) Create(col string, data map[string]any) (map[string]any, error) {
	if data == nil {
		return nil, &InvalidInputError{Message: "entity data must not be nil"}
	}

	id, _ := data["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collections[col]
	if c == nil {
		c = &collection{items: make(map[string]*Entity)}
		s.collections[col] = c
	}
	if _, exists := c.items[id]; exists {
		return nil, &AlreadyExistsError{Collection: col, ID: id}
	}

	now := s.now()
	e := &Entity{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Data:      cloneMap(data),
	}
	e.Data["id"] = id
	c.items[id] = e
	c.order = append(c.order, id)

	return e.Snapshot(), nil
}

// Update replaces every mutable field of an existing entity. The id and
// creation time are preserved; updated_at is refreshed.
func (s *Store) Update(col, id string, data map[string]any) (map[string]any, error) {
	if data == nil {
		return nil, &InvalidInputError{Message: "entity data must not be nil"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(col, id)
	if err != nil {
		return nil, err
	}

	e.Data = cloneMap(data)
	e.Data["id"] = id
	e.UpdatedAt = s.now()
	return e.Snapshot(), nil
}

// Delete removes an entity. Deleting an absent id returns a not-found error
// rather than silently succeeding twice.
func (s *Store) Delete(col, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collections[col]
	if c == nil {
		return &NotFoundError{Collection: col, ID: id}
	}
	if _, ok := c.items[id]; !ok {
		return &NotFoundError{Collection: col, ID: id}
	}

	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Exists reports whether the entity is present.
func (s *Store) Exists(col, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[col]
	if c == nil {
		return false
	}
	_, ok := c.items[id]
	return ok
}

// Count returns the number of entities in a collection.
func (s *Store) Count(col string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[col]
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Collections returns the names of all non-empty collections.
func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name, c := range s.collections {
		if len(c.order) > 0 {
			names = append(names, name)
		}
	}
	return names
}

// DeleteAll empties a collection and returns how many entities it held.
func (s *Store) DeleteAll(col string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[col]
	if c == nil {
		return 0
	}
	n := len(c.order)
	delete(s.collections, col)
	return n
}

func (s *Store) lookup(col, id string) (*Entity, error) {
	c := s.collections[col]
	if c == nil {
		return nil, &NotFoundError{Collection: col, ID: id}
	}
	e, ok := c.items[id]
	if !ok {
		return nil, &NotFoundError{Collection: col, ID: id}
	}
	return e, nil
}

// FromModel converts any JSON-taggable value into the store's document
// representation via a JSON round trip.
func FromModel(v any) (map[string]any, error) {
	b, err := oj.Marshal(v)
	if err != nil {
		return nil, &InvalidInputError{Message: err.Error()}
	}
	parsed, err := oj.Parse(b)
	if err != nil {
		return nil, &InvalidInputError{Message: err.Error()}
	}
	m, ok := parsed.(map[string]any)
	if !ok {
		return nil, &InvalidInputError{Message: "entity body must be a JSON object"}
	}
	return m, nil
}

// cloneMap deep-copies a JSON-shaped document so callers never share mutable
// state with the store.
func cloneMap(m map[string]any) map[string]any {
	b, err := oj.Marshal(m)
	if err != nil {
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	parsed, err := oj.Parse(b)
	if err != nil {
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	if out, ok := parsed.(map[string]any); ok {
		return out
	}
	return map[string]any{}
}

package repository

import (
	"maps"
	"slices"
	"sync"
)

// table is one entity's in-memory store: rows keyed by id plus the id counter.
// Every mutation, including id assignment, happens under mu.
type table[T any] struct {
	mu     sync.RWMutex
	nextID uint
	rows   map[uint]T

	id     func(*T) *uint
	unique func(T) string // nil when the entity has no unique key
	clone  func(T) T      // nil when T holds no shared buffers
}

func newTable[T any](id func(*T) *uint, unique func(T) string, clone func(T) T) *table[T] {
	return &table[T]{
		nextID: 1,
		rows:   make(map[uint]T),
		id:     id,
		unique: unique,
		clone:  clone,
	}
}

func (t *table[T]) copy(row T) T {
	if t.clone == nil {
		return row
	}
	return t.clone(row)
}

// conflictLocked reports whether another row already holds row's unique key.
func (t *table[T]) conflictLocked(row T, self uint) bool {
	if t.unique == nil {
		return false
	}
	key := t.unique(row)
	for id, other := range t.rows {
		if id != self && t.unique(other) == key {
			return true
		}
	}
	return false
}

func (t *table[T]) insert(row T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	if t.conflictLocked(row, 0) {
		return zero, ErrDuplicate
	}
	id := t.nextID
	t.nextID++
	*t.id(&row) = id
	t.rows[id] = t.copy(row)
	return t.copy(row), nil
}

func (t *table[T]) get(id uint) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return row, false
	}
	return t.copy(row), true
}

// find returns the lowest-id row matching pred.
func (t *table[T]) find(pred func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if row := t.rows[id]; pred(row) {
			return t.copy(row), true
		}
	}
	var zero T
	return zero, false
}

// list returns matching rows in ascending id order.
func (t *table[T]) list(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []T{}
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if row := t.rows[id]; pred == nil || pred(row) {
			out = append(out, t.copy(row))
		}
	}
	return out
}

func (t *table[T]) count(pred func(T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, row := range t.rows {
		if pred(row) {
			n++
		}
	}
	return n
}

// update applies mutate to a copy of the stored row and stores it back.
// The stored row is untouched when the id is unknown or the key collides.
func (t *table[T]) update(id uint, mutate func(*T)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	existing, ok := t.rows[id]
	if !ok {
		return zero, ErrNotFound
	}
	row := t.copy(existing)
	mutate(&row)
	*t.id(&row) = id
	if t.conflictLocked(row, id) {
		return zero, ErrDuplicate
	}
	t.rows[id] = row
	return t.copy(row), nil
}

func (t *table[T]) remove(id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// Package store holds the authoritative ordered collection of shape records
// together with its undo and redo history.
package store

import (
	"sync"

	"inkboard/shape"
)

// Updater computes the next collection from the current one. It receives a
// private copy and may modify it freely.
type Updater func(current []shape.Record) []shape.Record

type Option func(*Store)

// WithLimit bounds the undo history to n snapshots; the oldest are dropped
// first. Zero means unbounded.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithOnChange registers a callback run after every accepted change, undo
// and redo. It receives a copy of the new current collection.
func WithOnChange(fn func([]shape.Record)) Option {
	return func(s *Store) { s.onChange = fn }
}

// WithInitial seeds the current collection without creating history.
func WithInitial(records []shape.Record) Option {
	return func(s *Store) { s.current = shape.CloneAll(records) }
}

type Store struct {
	mu        sync.RWMutex
	current   []shape.Record
	undoStack [][]shape.Record
	redoStack [][]shape.Record
	limit     int
	onChange  func([]shape.Record)
}

func New(opts ...Option) *Store {
	s := &Store{
		current:   []shape.Record{},
		undoStack: [][]shape.Record{},
		redoStack: [][]shape.Record{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shapes returns a copy of the current collection in paint order.
func (s *Store) Shapes() []shape.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return shape.CloneAll(s.current)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.current)
}

// Find returns a copy of the record with the given id.
func (s *Store) Find(id string) (shape.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := shape.Index(s.current, id); i >= 0 {
		return s.current[i].Clone(), true
	}
	return shape.Record{}, false
}

func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undoStack) > 0
}

func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redoStack) > 0
}

// Depth reports the number of undo and redo entries.
func (s *Store) Depth() (undo, redo int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undoStack), len(s.redoStack)
}

// SetShapes installs the collection computed by update. The previous
// collection goes onto the undo stack and the redo stack is cleared. When
// the result equals the current collection nothing happens and false is
// returned.
func (s *Store) SetShapes(update Updater) bool {
	snapshot, changed := s.commit(update)
	if changed {
		s.notify(snapshot)
	}
	return changed
}

func (s *Store) commit(update Updater) ([]shape.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := update(shape.CloneAll(s.current))
	if next == nil {
		next = []shape.Record{}
	}
	if shape.EqualSequence(next, s.current) {
		return nil, false
	}

	s.undoStack = append(s.undoStack, s.current)
	if s.limit > 0 && len(s.undoStack) > s.limit {
		drop := len(s.undoStack) - s.limit
		s.undoStack = append(s.undoStack[:0:0], s.undoStack[drop:]...)
	}
	s.redoStack = s.redoStack[:0]
	s.current = shape.CloneAll(next)
	return shape.CloneAll(s.current), true
}

// Replace installs next as the whole collection. It is SetShapes with a
// constant updater.
func (s *Store) Replace(next []shape.Record) bool {
	return s.SetShapes(func([]shape.Record) []shape.Record { return next })
}

// Undo reinstates the previous snapshot. It reports false when there is
// nothing to undo.
func (s *Store) Undo() bool {
	snapshot, ok := s.step(&s.undoStack, &s.redoStack)
	if ok {
		s.notify(snapshot)
	}
	return ok
}

// Redo reinstates the snapshot most recently undone.
func (s *Store) Redo() bool {
	snapshot, ok := s.step(&s.redoStack, &s.undoStack)
	if ok {
		s.notify(snapshot)
	}
	return ok
}

// step pops from and pushes the current collection onto to.
func (s *Store) step(from, to *[][]shape.Record) ([]shape.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(*from) == 0 {
		return nil, false
	}
	lastIndex := len(*from) - 1
	prev := (*from)[lastIndex]
	*from = (*from)[:lastIndex]

	*to = append(*to, s.current)
	s.current = prev
	return shape.CloneAll(s.current), true
}

// notify runs the change callback outside the lock so that it may read
// the store.
func (s *Store) notify(snapshot []shape.Record) {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn(snapshot)
	}
}

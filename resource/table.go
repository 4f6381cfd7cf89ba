package resource

import (
	"sync"
)

// Table maps handles to live values and notifies observers on changes.
type Table[T any] struct {
	backend   *LocalBackend[T]
	observers []Observer[T]
	obsMu     sync.RWMutex
}

// NewTable creates a new table with a LocalBackend.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		backend: NewLocalBackend[T](),
	}
}

// Insert adds a value and returns its handle, or 0 once the table is closed.
func (t *Table[T]) Insert(value T) Handle {
	handle, err := t.backend.Create(value)
	if err != nil {
		return 0
	}

	t.notify(Event[T]{
		Type:   EventCreated,
		Handle: handle,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *Table[T]) Get(handle Handle) (T, bool) {
	return t.backend.Get(handle)
}

// Remove drops an entry and returns (value, true) if found.
func (t *Table[T]) Remove(handle Handle) (T, bool) {
	value, ok := t.backend.Drop(handle)
	if !ok {
		return value, false
	}

	if d, ok := any(value).(Dropper); ok {
		d.Drop()
	}

	t.notify(Event[T]{
		Type:   EventDropped,
		Handle: handle,
		Value:  value,
	})

	return value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer[T]) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int {
	return t.backend.Len()
}

// Close drops all entries and stops accepting inserts.
func (t *Table[T]) Close() error {
	return t.backend.Close()
}

func (t *Table[T]) notify(e Event[T]) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnEvent(e)
	}
}

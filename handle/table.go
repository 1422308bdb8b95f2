package handle

import "sync"

// Handle is an opaque reference to a value in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Kind tags the type of value a handle refers to, so a handle minted for
// one kind cannot be replayed against another.
type Kind uint32

// Releaser is optionally implemented by stored values that need cleanup
// when their handle is freed.
type Releaser interface {
	Release()
}

type entry struct {
	value any
	kind  Kind
	live  bool
}

// Table maps opaque handles to values. Freed slots are reused through a
// free list, so handles stay small; a freed handle is dead until its
// slot is reissued. Safe for concurrent use.
type Table struct {
	mu       sync.RWMutex
	entries  []entry
	freeList []Handle
	closed   bool
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Put stores a value and returns its handle. A closed table returns 0.
func (t *Table) Put(kind Kind, value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0
	}

	e := entry{value: value, kind: kind, live: true}
	if n := len(t.freeList); n > 0 {
		h := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[h-1] = e
		return h
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// Get retrieves a live value of the expected kind.
func (t *Table) Get(h Handle, kind Kind) (any, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(h) - 1
	if idx >= len(t.entries) {
		return nil, false
	}
	e := t.entries[idx]
	if !e.live || e.kind != kind {
		return nil, false
	}
	return e.value, true
}

// Free releases a handle and runs the value's Releaser, if any. Freeing
// a dead or never-issued handle reports false and has no effect.
func (t *Table) Free(h Handle, kind Kind) bool {
	if h == 0 {
		return false
	}

	t.mu.Lock()
	idx := int(h) - 1
	if idx >= len(t.entries) {
		t.mu.Unlock()
		return false
	}
	e := &t.entries[idx]
	if !e.live || e.kind != kind {
		t.mu.Unlock()
		return false
	}

	value := e.value
	e.live = false
	e.value = nil
	t.freeList = append(t.freeList, h)
	t.mu.Unlock()

	if r, ok := value.(Releaser); ok {
		r.Release()
	}
	return true
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.live {
			count++
		}
	}
	return count
}

// Each visits every live handle of the given kind.
func (t *Table) Each(kind Kind, fn func(Handle, any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e.live && e.kind == kind {
			if !fn(Handle(i+1), e.value) {
				return
			}
		}
	}
}

// Close frees every live handle, running Releasers, and rejects further
// Puts. Close is idempotent.
func (t *Table) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true

	var cleanup []Releaser
	for i := range t.entries {
		if t.entries[i].live {
			if r, ok := t.entries[i].value.(Releaser); ok {
				cleanup = append(cleanup, r)
			}
			t.entries[i].live = false
			t.entries[i].value = nil
		}
	}
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	for _, r := range cleanup {
		r.Release()
	}
}

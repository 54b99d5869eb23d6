package store

import "sync"

// opStatus is the lifecycle of one logical form's operation.
type opStatus int

const (
	opIdle opStatus = iota
	opInFlight
	opSucceeded
	opFailed
)

type opKind int

const (
	opLoad opKind = iota
	opAdd
	opEdit
	opDelete
)

// opKey identifies a logical form: the add form has one key, every
// edit/delete row has its own.
type opKey struct {
	kind opKind
	id   int64
}

// opTracker holds the per-form state machines. begin is the transition
// precondition that makes duplicate submission a no-op: while a form is
// in flight, a repeat begin for the same key fails and the caller must
// not issue a second network call.
type opTracker struct {
	ops map[opKey]opStatus
	mu  sync.Mutex
}

// begin moves key to in-flight. It returns false when the key is already
// in flight.
func (t *opTracker) begin(key opKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ops == nil {
		t.ops = make(map[opKey]opStatus)
	}
	if t.ops[key] == opInFlight {
		return false
	}
	t.ops[key] = opInFlight
	return true
}

// finish records the outcome of an in-flight operation.
func (t *opTracker) finish(key opKey, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.ops[key] = opFailed
		return
	}
	t.ops[key] = opSucceeded
}

// status reports the current state for a key.
func (t *opTracker) status(key opKey) opStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ops[key]
}

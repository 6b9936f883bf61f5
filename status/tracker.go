package status

import "sync"

// Operation names an asynchronous UI operation that owns a loading flag
type Operation string

const (
	OpLogin           Operation = "login"
	OpRegister        Operation = "register"
	OpLoadProducts    Operation = "loadProducts"
	OpAddProduct      Operation = "addProduct"
	OpGenerateInvoice Operation = "generateInvoice"
)

// Tracker holds one loading flag per operation, so a slow invoice export
// cannot be masked by an add-product call finishing first.
type Tracker struct {
	mu     sync.RWMutex
	active map[Operation]int
}

func NewTracker() *Tracker {
	return &Tracker{active: make(map[Operation]int)}
}

// Begin marks op as in flight. The returned func clears it and is meant to be
// deferred so the flag is released on every path.
func (t *Tracker) Begin(op Operation) (done func()) {
	t.mu.Lock()
	t.active[op]++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.active[op] <= 1 {
				delete(t.active, op)
				return
			}
			t.active[op]--
		})
	}
}

// Busy reports whether op is in flight
func (t *Tracker) Busy(op Operation) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active[op] > 0
}

// Any reports whether any operation is in flight
func (t *Tracker) Any() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.active) > 0
}

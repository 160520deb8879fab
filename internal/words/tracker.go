package words

import (
	"strings"
	"sync"
)

// Ticket identifies one validation request.
type Ticket struct {
	seq  uint64
	Word string
}

// Tracker remembers the most recently requested word so that a result for
// an older request can be recognised and dropped. The zero value is ready
// to use.
type Tracker struct {
	mu      sync.Mutex
	seq     uint64
	pending bool
}

// Begin registers a new request for word, superseding any earlier one.
func (t *Tracker) Begin(word string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.pending = true
	return Ticket{seq: t.seq, Word: strings.ToUpper(strings.TrimSpace(word))}
}

// Finish reports whether tk is still the latest request. Only the latest
// request clears the pending flag.
func (t *Tracker) Finish(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tk.seq != t.seq {
		return false
	}
	t.pending = false
	return true
}

// Pending reports whether the latest request has not finished yet.
func (t *Tracker) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

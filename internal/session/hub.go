package session

import (
	"sync"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/game"
)

// subscriberBuffer is how many updates a live subscriber may lag behind
// before it is dropped.
const subscriberBuffer = 16

// hub fans committed states out to live subscribers, per game.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[chan game.State]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[chan game.State]struct{})}
}

// subscribe registers a channel for game id. cancel is safe to call more
// than once and after the hub dropped the subscriber.
func (h *hub) subscribe(id string) (<-chan game.State, func()) {
	ch := make(chan game.State, subscriberBuffer)
	h.mu.Lock()
	if h.subs[id] == nil {
		h.subs[id] = make(map[chan game.State]struct{})
	}
	h.subs[id][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.remove(id, ch)
	}
	return ch, cancel
}

// publish delivers s without blocking; subscribers whose buffer is full are
// closed and removed.
func (h *hub) publish(s game.State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[s.ID] {
		select {
		case ch <- s:
		default:
			h.remove(s.ID, ch)
		}
	}
}

// remove closes ch if it is still registered. Callers hold h.mu.
func (h *hub) remove(id string, ch chan game.State) {
	set, ok := h.subs[id]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(h.subs, id)
	}
}

// closeAll disconnects every subscriber of game id.
func (h *hub) closeAll(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[id] {
		h.remove(id, ch)
	}
}

// count reports the number of subscribers for id.
func (h *hub) count(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[id])
}

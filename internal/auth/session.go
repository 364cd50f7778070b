package auth

import (
	"sync"

	"github.com/rgoyal/flipfolio/internal/models"
)

// SessionBroadcaster holds the current signed-in user and notifies
// subscribers when it changes. It replaces ad-hoc module-level
// current-user variables with an explicit observable owned by the auth
// layer.
//
// Lifecycle: Subscribe returns an id and a receive-only channel; the
// channel receives the user snapshot after every Set (nil on sign-out).
// Callers must Unsubscribe with the id when done, which closes the
// channel. Notifications are best-effort: a subscriber that is not
// draining its channel misses intermediate states rather than blocking
// the broadcaster.
type SessionBroadcaster struct {
	mu      sync.Mutex
	current *models.User
	nextID  int
	subs    map[int]chan *models.User
}

// NewSessionBroadcaster creates a broadcaster with no signed-in user.
func NewSessionBroadcaster() *SessionBroadcaster {
	return &SessionBroadcaster{
		subs: make(map[int]chan *models.User),
	}
}

// Current returns the current user snapshot, or nil when signed out.
func (b *SessionBroadcaster) Current() *models.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Set replaces the current user and notifies all subscribers. Passing nil
// signals sign-out.
func (b *SessionBroadcaster) Set(user *models.User) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = user
	for _, ch := range b.subs {
		select {
		case ch <- user:
		default: // subscriber not draining, drop this update
		}
	}
}

// Subscribe registers a listener and returns its id and channel. The
// channel is buffered so a slow subscriber never blocks Set.
func (b *SessionBroadcaster) Subscribe() (int, <-chan *models.User) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan *models.User, 1)
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes the listener and closes its channel. Unknown ids are
// ignored, so double-unsubscribe is safe.
func (b *SessionBroadcaster) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		close(ch)
		delete(b.subs, id)
	}
}

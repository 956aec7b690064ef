package engine

import "sync"

// StreamLocks hands out one exclusive lock per stream id.
//
// Entries are reference counted and removed when the last holder unlocks, so
// the map only holds streams with in-flight commands.
type StreamLocks struct {
	mu    sync.Mutex
	locks map[string]*streamLock
}

type streamLock struct {
	mu   sync.Mutex
	refs int
}

// Lock blocks until the caller holds streamID exclusively and returns the
// matching unlock function.
func (l *StreamLocks) Lock(streamID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*streamLock)
	}
	entry, ok := l.locks[streamID]
	if !ok {
		entry = &streamLock{}
		l.locks[streamID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, streamID)
		}
		l.mu.Unlock()
	}
}

func (l *StreamLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

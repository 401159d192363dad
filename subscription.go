package fluxkit

import (
	"context"
	"sync"
)

// defaultSubscriberBuffer is the per-subscriber channel buffer used when no
// store option overrides it.
const defaultSubscriberBuffer = 16

// changeFanout delivers state changes to subscribers without ever blocking
// the dispatch path: when a subscriber's buffer is full the change is dropped
// for that subscriber. All methods are safe for concurrent use.
type changeFanout struct {
	mu        sync.RWMutex
	subs      map[*changeSub]struct{}
	buffer    int
	closed    bool
	done      chan struct{}
	cleanupWg sync.WaitGroup
}

type changeSub struct {
	ch   chan Change
	once sync.Once
}

func (c *changeSub) close() {
	c.once.Do(func() { close(c.ch) })
}

// send attempts a non-blocking delivery. A false return means the subscriber
// buffer is full or the channel already closed.
func (c *changeSub) send(ch Change) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.ch <- ch:
		return true
	default:
		return false
	}
}

func newChangeFanout(buffer int) *changeFanout {
	return &changeFanout{
		subs: make(map[*changeSub]struct{}),
		// Zero-buffer channels would make every publish blocking and defeat
		// the non-blocking contract.
		buffer: max(buffer, 1),
		done:   make(chan struct{}),
	}
}

func (f *changeFanout) subscribe(ctx context.Context) <-chan Change {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := &changeSub{ch: make(chan Change, f.buffer)}
	if f.closed {
		sub.close()
		return sub.ch
	}
	f.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		f.cleanupWg.Add(1)
		go func() {
			defer f.cleanupWg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-f.done:
			}
		}()
	}

	return sub.ch
}

// publish fans a change out to every subscriber. Subscribers whose buffer is
// full are dropped from the set asynchronously to keep publish contention-free
// on the read lock.
func (f *changeFanout) publish(ch Change) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}
	for sub := range f.subs {
		if !sub.send(ch) {
			go f.unsubscribe(sub)
		}
	}
}

func (f *changeFanout) unsubscribe(sub *changeSub) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, sub)
	sub.close()
}

func (f *changeFanout) close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.done)
	for sub := range f.subs {
		sub.close()
	}
	clear(f.subs)
	f.mu.Unlock()

	// Wait for context-cleanup goroutines so close never races unsubscribe.
	f.cleanupWg.Wait()
}

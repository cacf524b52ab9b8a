// Package observe broadcasts the latest value of a ledger to subscribers.
package observe

import "sync"

// Feed fans a value out to subscribers. Each subscriber channel holds at most
// one value; a newer value replaces an unread one, so Publish never blocks.
type Feed[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan T
}

// Subscribe returns a channel of updates and a cancel func that closes it.
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subs == nil {
		f.subs = make(map[int]chan T)
	}
	id := f.nextID
	f.nextID++
	ch := make(chan T, 1)
	f.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

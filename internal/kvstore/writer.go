package kvstore

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

var ErrWriterClosed = errors.New("kvstore writer closed")

type writeOp struct {
	key    string
	value  string
	delete bool
	done   chan struct{}
}

// Writer applies puts and deletes to a Store from a single goroutine, in the
// order they were queued. Callers never wait for the backend; Flush waits for
// everything queued before it.
type Writer struct {
	store   Store
	ops     chan writeOp
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewWriter(store Store, buffer int) *Writer {
	if buffer < 1 {
		buffer = 64
	}
	w := &Writer{
		store:   store,
		ops:     make(chan writeOp, buffer),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w
}

// Store exposes the backend for synchronous reads at load time.
func (w *Writer) Store() Store {
	return w.store
}

func (w *Writer) loop() {
	defer close(w.stopped)
	for {
		select {
		case op := <-w.ops:
			w.apply(op)
		case <-w.quit:
			for {
				select {
				case op := <-w.ops:
					w.apply(op)
				default:
					return
				}
			}
		}
	}
}

func (w *Writer) apply(op writeOp) {
	if op.done != nil {
		close(op.done)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if op.delete {
		err = w.store.Delete(ctx, op.key)
	} else {
		err = w.store.Put(ctx, op.key, op.value)
	}
	if err != nil {
		log.Printf("[STORE] [ERROR] write %s failed: %v", op.key, err)
	}
}

func (w *Writer) enqueue(op writeOp) bool {
	select {
	case <-w.quit:
		return false
	default:
	}
	select {
	case w.ops <- op:
		return true
	case <-w.quit:
		return false
	}
}

// Put queues a write of value under key.
func (w *Writer) Put(key, value string) {
	if !w.enqueue(writeOp{key: key, value: value}) {
		log.Printf("[STORE] [WARN] write %s dropped: writer closed", key)
	}
}

// Delete queues removal of key.
func (w *Writer) Delete(key string) {
	if !w.enqueue(writeOp{key: key, delete: true}) {
		log.Printf("[STORE] [WARN] delete %s dropped: writer closed", key)
	}
}

// Flush blocks until every operation queued before the call has been applied.
func (w *Writer) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if !w.enqueue(writeOp{done: done}) {
		return ErrWriterClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains pending writes, stops the goroutine and closes the store.
func (w *Writer) Close(ctx context.Context) error {
	w.once.Do(func() { close(w.quit) })
	select {
	case <-w.stopped:
	case <-ctx.Done():
		return ctx.Err()
	}
	return w.store.Close(ctx)
}

package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jask/moneymate/internal/store"
)

// ErrWriterClosed is returned by a second Close.
var ErrWriterClosed = errors.New("writer is closed")

// Store is the persistence the ledger writes through.
type Store interface {
	Load(ctx context.Context) (store.Snapshot, error)
	Save(ctx context.Context, s store.Snapshot) error
	Remove(ctx context.Context, keys ...string) error
}

type writeOp struct {
	seq      uint64
	snapshot store.Snapshot
	remove   []string
}

func (o writeOp) isRemove() bool { return o.remove != nil }

// Writer persists snapshots on a single goroutine in enqueue order. A save
// queued behind another pending save replaces it, so the store only ever
// sees the newest state. Removals are never merged.
type Writer struct {
	store Store
	log   zerolog.Logger

	mu       sync.Mutex
	pending  []writeOp
	queued   uint64
	written  uint64
	progress chan struct{}
	lastErr  error
	failures int
	closed   bool

	wake      chan struct{}
	closeChan chan struct{}
	wg        sync.WaitGroup
}

// NewWriter starts the write loop.
func NewWriter(st Store, log zerolog.Logger) *Writer {
	w := &Writer{
		store:     st,
		log:       log,
		progress:  make(chan struct{}),
		wake:      make(chan struct{}, 1),
		closeChan: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Save queues a full snapshot write.
func (w *Writer) Save(s store.Snapshot) {
	w.enqueue(writeOp{snapshot: s})
}

// Remove queues deletion of keys.
func (w *Writer) Remove(keys ...string) {
	w.enqueue(writeOp{remove: append([]string{}, keys...)})
}

func (w *Writer) enqueue(op writeOp) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warn().Msg("write dropped after close")
		return
	}
	w.queued++
	op.seq = w.queued
	if n := len(w.pending); n > 0 && !op.isRemove() && !w.pending[n-1].isRemove() {
		w.pending[n-1] = op
	} else {
		w.pending = append(w.pending, op)
	}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Writer) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.closeChan:
			w.drain()
			return
		}
	}
}

func (w *Writer) drain() {
	for {
		w.mu.Lock()
		batch := w.pending
		w.pending = nil
		w.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, op := range batch {
			err := w.apply(op)

			w.mu.Lock()
			if err != nil {
				w.lastErr = err
				w.failures++
			}
			w.written = op.seq
			close(w.progress)
			w.progress = make(chan struct{})
			w.mu.Unlock()
		}
	}
}

func (w *Writer) apply(op writeOp) error {
	ctx := context.Background()
	if op.isRemove() {
		if err := w.store.Remove(ctx, op.remove...); err != nil {
			w.log.Error().Err(err).Strs("keys", op.remove).Msg("remove persisted keys")
			return err
		}
		w.log.Debug().Strs("keys", op.remove).Msg("removed persisted keys")
		return nil
	}
	if err := w.store.Save(ctx, op.snapshot); err != nil {
		w.log.Error().Err(err).Uint64("seq", op.seq).Msg("persist snapshot")
		return err
	}
	w.log.Debug().Uint64("seq", op.seq).
		Int("transactions", len(op.snapshot.Transactions)).
		Int("goals", len(op.snapshot.Goals)).
		Msg("persisted snapshot")
	return nil
}

// Flush blocks until every write queued before the call has been attempted.
// It returns the most recent write error since the previous Flush.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.queued
	w.mu.Unlock()

	for {
		w.mu.Lock()
		if w.written >= target {
			err := w.lastErr
			w.lastErr = nil
			w.mu.Unlock()
			return err
		}
		ch := w.progress
		w.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Failures reports how many writes have failed since start.
func (w *Writer) Failures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failures
}

// Close drains the queue and stops the write loop. Later writes are dropped.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWriterClosed
	}
	w.closed = true
	close(w.closeChan)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.lastErr
	w.lastErr = nil
	return err
}

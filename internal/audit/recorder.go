// Package audit writes activity and system log rows off the request path.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBatchSize = 10
	defaultInterval  = time.Second
	defaultBuffer    = 100
)

// Writer persists log rows.
type Writer[T any] interface {
	Create(ctx context.Context, entry *T) error
	CreateBatch(ctx context.Context, entries []T) error
}

// Recorder buffers entries and writes them in batches from one goroutine.
// Entries are flushed when a batch fills up, on every tick, and on Close.
type Recorder[T any] struct {
	writer    Writer[T]
	entries   chan T
	batchSize int
	interval  time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// Option tunes a Recorder.
type Option func(*options)

type options struct {
	batchSize int
	interval  time.Duration
	buffer    int
}

// WithBatchSize sets how many entries are written per insert.
func WithBatchSize(n int) Option {
	return func(o *options) { o.batchSize = n }
}

// WithInterval sets how often a partial batch is flushed.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithBuffer sets how many entries may wait before Record writes synchronously.
func WithBuffer(n int) Option {
	return func(o *options) { o.buffer = n }
}

// NewRecorder starts a recorder writing through w. Call Close to stop it.
func NewRecorder[T any](w Writer[T], opts ...Option) *Recorder[T] {
	o := options{batchSize: defaultBatchSize, interval: defaultInterval, buffer: defaultBuffer}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Recorder[T]{
		writer:    w,
		entries:   make(chan T, o.buffer),
		batchSize: o.batchSize,
		interval:  o.interval,
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Record queues entry. When the queue is full, or the recorder is closed,
// the entry is written synchronously instead.
func (r *Recorder[T]) Record(ctx context.Context, entry T) {
	r.mu.RLock()
	if !r.closed {
		select {
		case r.entries <- entry:
			r.mu.RUnlock()
			return
		default:
		}
	}
	r.mu.RUnlock()

	if err := r.writer.Create(context.WithoutCancel(ctx), &entry); err != nil {
		log.Error().Err(err).Msg("audit: write entry")
	}
}

// Close stops accepting entries, flushes what is queued and waits for the
// worker to exit.
func (r *Recorder[T]) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.entries)
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Recorder[T]) run() {
	defer r.wg.Done()

	batch := make([]T, 0, r.batchSize)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.writer.CreateBatch(context.Background(), batch); err != nil {
			log.Error().Err(err).Int("entries", len(batch)).Msg("audit: write batch")
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-r.entries:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= r.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

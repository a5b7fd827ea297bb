package checkpoint

import (
	"context"
	"sync"
	"time"

	"github.com/openrec/skillrank/internal/domain/model"
	"github.com/openrec/skillrank/pkg/logger"
	"github.com/openrec/skillrank/pkg/metrics"
)

// Default journal configuration constants.
const (
	defaultJournalCapacity = 1024
	defaultFlushTimeout    = 5 * time.Second
)

// Journal decouples progress reporting from checkpoint I/O. Progress
// records are enqueued on a bounded channel and flushed to the backing
// Store by a background worker, so the calculation loop never blocks on
// disk. When the channel is full the record is dropped; progress is
// advisory and the next record supersedes it.
type Journal struct {
	store    Store
	records  chan model.CalculationState
	capacity int
	timeout  time.Duration
	log      logger.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// JournalOption configures a Journal.
type JournalOption func(*Journal)

// WithCapacity sets the bounded channel capacity.
func WithCapacity(n int) JournalOption {
	return func(j *Journal) {
		if n > 0 {
			j.capacity = n
		}
	}
}

// WithFlushTimeout bounds how long a single flush may take.
func WithFlushTimeout(d time.Duration) JournalOption {
	return func(j *Journal) {
		if d > 0 {
			j.timeout = d
		}
	}
}

// WithJournalLogger sets the logger used by the flush worker.
func WithJournalLogger(log logger.Logger) JournalOption {
	return func(j *Journal) {
		if log != nil {
			j.log = log
		}
	}
}

// NewJournal creates a journal writing to store.
func NewJournal(store Store, opts ...JournalOption) *Journal {
	j := &Journal{
		store:    store,
		capacity: defaultJournalCapacity,
		timeout:  defaultFlushTimeout,
		done:     make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(j)
	}

	if j.log == nil {
		j.log = logger.Named("journal")
	}
	j.records = make(chan model.CalculationState, j.capacity)

	metrics.UpdateJournalDepth(0)

	return j
}

// Start launches the background flush worker. It runs until the journal
// is closed or ctx is cancelled.
func (j *Journal) Start(ctx context.Context) {
	go j.flushLoop(ctx)
}

// Record enqueues a progress record without blocking. Returns false if
// the record was dropped because the journal is full or closed.
func (j *Journal) Record(ctx context.Context, state *model.CalculationState) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		metrics.RecordJournalDropped()
		return false
	}

	select {
	case j.records <- *state:
		metrics.UpdateJournalDepth(len(j.records))
		return true
	case <-ctx.Done():
		metrics.RecordJournalDropped()
		return false
	default:
		metrics.RecordJournalDropped()
		return false
	}
}

// flushLoop drains the channel and persists each record.
func (j *Journal) flushLoop(ctx context.Context) {
	defer close(j.done)

	for {
		select {
		case rec, ok := <-j.records:
			if !ok {
				return
			}
			j.flush(rec)
			metrics.UpdateJournalDepth(len(j.records))
		case <-ctx.Done():
			// Drain whatever is already queued before stopping.
			for {
				select {
				case rec, ok := <-j.records:
					if !ok {
						return
					}
					j.flush(rec)
				default:
					return
				}
			}
		}
	}
}

// flush persists one record with a bounded timeout. Failures are logged
// and counted but never propagated; progress records are advisory.
func (j *Journal) flush(rec model.CalculationState) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.store.SaveState(ctx, &rec); err != nil {
		metrics.RecordCheckpointFailure()
		j.log.Warn(ctx, "failed to flush progress record",
			logger.String("run_id", rec.ID),
			logger.Error(err))
		return
	}
	metrics.RecordCheckpointWrite()
}

// Close stops accepting records and waits for queued records to flush.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	j.closed = true
	close(j.records)
	j.mu.Unlock()

	<-j.done
	return nil
}

// IsClosed returns true if the journal has been closed.
func (j *Journal) IsClosed() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.closed
}

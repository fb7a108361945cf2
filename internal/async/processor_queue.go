package async

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// ErrQueueClosed is returned by Enqueue after Shutdown.
var ErrQueueClosed = errors.New("queue is shutting down")

// DocumentProcessor turns one document into a terminal record.
type DocumentProcessor interface {
	Process(ctx context.Context, doc entity.Document) (entity.ExtractionRecord, error)
}

// Sink receives every terminal record, including Error records.
type Sink func(ctx context.Context, rec entity.ExtractionRecord) error

type ProcessorQueue struct {
	proc    DocumentProcessor
	sink    Sink
	namer   func(string) string
	logger  *slog.Logger
	workers int
	timeout time.Duration
	runID   string
	now     func() time.Time

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
	next   atomic.Int64
	seen   map[string]string // path -> fingerprint
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}
func WithSink(s Sink) Option {
	return func(q *ProcessorQueue) { q.sink = s }
}

// WithNamer sets the name derivation used for Error records.
func WithNamer(f func(string) string) Option {
	return func(q *ProcessorQueue) { q.namer = f }
}

// WithRunID tags worker logs with the daemon's run.
func WithRunID(id string) Option {
	return func(q *ProcessorQueue) { q.runID = id }
}

func NewProcessorQueue(proc DocumentProcessor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		workers: 2,
		timeout: 3 * time.Minute,
		now:     time.Now,
		ch:      make(chan Job, 256),
		seen:    make(map[string]string),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("queue.worker.started", "worker_id", workerID)

				for job := range q.ch {
					q.handle(workerID, job)
				}

				q.logger.Info("queue.worker.stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) handle(workerID int, job Job) {
	idx := int(q.next.Add(1) - 1)
	doc := entity.Document{Index: idx, Path: job.Path, Name: filepath.Base(job.Path)}

	ctx := context.Background()
	if q.runID != "" {
		ctx = common.WithRunID(ctx, q.runID)
	}
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()
	log := common.LoggerFrom(common.WithDocument(ctx, job.Path), q.logger).With("worker_id", workerID)

	rec, err := q.process(ctx, doc)
	if err != nil {
		log.Error("queue.process.failed", "error", err)
		var name string
		if q.namer != nil {
			name = q.namer(doc.Name)
		}
		rec = entity.NewRecord(doc, name, entity.Fields{}, entity.Errored(common.ErrorDetail(err)), q.now())
	} else {
		log.Info("queue.process.ok", "status", rec.Status.String(), "wait_ms", q.now().Sub(job.SubmittedAt).Milliseconds())
	}

	if q.sink != nil {
		// the record must land even when processing hit the deadline
		if err := q.sink(context.WithoutCancel(ctx), rec); err != nil {
			log.Error("queue.sink.failed", "error", err)
		}
	}
}

func (q *ProcessorQueue) process(ctx context.Context, doc entity.Document) (rec entity.ExtractionRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return q.proc.Process(ctx, doc)
}

// Enqueue blocks when the buffer is full. A job whose fingerprint matches
// the last one seen for its path is dropped unless forced.
func (q *ProcessorQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Warn("queue.enqueue.closed", "path", job.Path)
		return ErrQueueClosed
	}
	if job.Fingerprint != "" && !job.Force {
		if prev, ok := q.seen[job.Path]; ok && prev == job.Fingerprint {
			q.mu.Unlock()
			q.logger.Debug("queue.enqueue.duplicate", "path", job.Path)
			return nil
		}
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = q.now()
	}
	// hold the lock while sending so Shutdown cannot close the channel mid-send
	defer q.mu.Unlock()

	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue.full", "path", job.Path)
		select {
		case q.ch <- job:
		case <-ctx.Done():
			// not recorded as seen, so the next event for this file retries
			return ctx.Err()
		}
	}
	if job.Fingerprint != "" {
		q.seen[job.Path] = job.Fingerprint
	}
	q.logger.Info("queue.enqueued", "path", job.Path, "force", job.Force)
	return nil
}

func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("queue.shutdown.interrupted")
	case <-done:
		q.logger.Info("queue.shutdown.drained")
	}
}

package async

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/expenso-app/receipt-extraction/internal/extract"
)

// ExtractorQueue fans receipt text files out over a fixed worker pool. Each
// worker reads the file, runs the extraction engine and delivers the result
// on the results channel. Empty files are logged and skipped so one blank
// scan never aborts a batch.
type ExtractorQueue struct {
	eng     *extract.Extractor
	logger  *slog.Logger
	results chan<- Result
	locale  string
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ExtractorQueue)

func WithWorkers(n int) Option {
	return func(q *ExtractorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *ExtractorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithLocale(locale string) Option {
	return func(q *ExtractorQueue) {
		if locale != "" {
			q.locale = locale
		}
	}
}

func WithJobTimeout(d time.Duration) Option {
	return func(q *ExtractorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewExtractorQueue(eng *extract.Extractor, results chan<- Result, logger *slog.Logger, opts ...Option) *ExtractorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ExtractorQueue{
		eng:     eng,
		logger:  logger,
		results: results,
		workers: 4,
		timeout: 30 * time.Second,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ExtractorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("batch.worker started", "worker_id", workerID)

				for job := range q.ch {
					q.process(workerID, job)
				}

				q.logger.Info("batch.worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ExtractorQueue) process(workerID int, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	text, err := os.ReadFile(job.Path)
	if err != nil {
		q.logger.Error("batch.read failed", "worker_id", workerID, "job_id", job.ID, "path", job.Path, "error", err)
		return
	}

	x, err := q.eng.Extract(ctx, extract.RawRecognition{Text: string(text), Locale: q.locale})
	if err != nil {
		if errors.Is(err, extract.ErrNoTextRecognized) {
			q.logger.Warn("batch.skip empty recognition", "worker_id", workerID, "job_id", job.ID, "path", job.Path)
		} else {
			q.logger.Error("batch.extract failed", "worker_id", workerID, "job_id", job.ID, "path", job.Path, "error", err)
		}
		return
	}

	q.results <- Result{ID: job.ID, Path: job.Path, Extraction: x}
	q.logger.Info("batch.extracted", "worker_id", workerID, "job_id", job.ID, "path", job.Path, "confidence", x.Confidence)
}

func (q *ExtractorQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "job_id", job.ID)
		return nil
	}
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue full, applying backpressure", "job_id", job.ID)
		q.ch <- job
	}
	return nil
}

func (q *ExtractorQueue) Shutdown(ctx context.Context) {
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
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}

// Package worker provides an asynchronous worker pool for archiving answer
// records using the provided storage.Driver and announcing them via the
// provided eventstream.Publisher.
//
// The pool decouples persistence from the response hot path: the caller gets
// its answer immediately, and the archive catches up in the background. A
// failed save or publish is logged, never surfaced to the caller.
package worker

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/eventstream"
	"github.com/ledgerlens/ledgerlens/pkg/storage"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// Job is a unit of work for the worker pool to execute against.
type Job struct {
	Record      *storage.Record
	UsedContext bool
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Driver is the storage backend for archiving answer records.
	Driver storage.Driver

	// Publisher is the optional event publisher announcing archived answers.
	Publisher eventstream.Publisher

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// Logger is the provided zap logger
	Logger *zap.Logger
}

// Pool processes archive jobs asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan Job
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	wp := &Pool{
		config: c,
		queue:  make(chan Job, c.QueueSize),
		logger: c.Logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a job for processing by the worker pool.
// Returns true if enqueued, false if the queue is full, resulting in the job being dropped
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("job queued",
			zap.String("task", job.Record.Task),
			zap.String("session_id", job.Record.SessionID),
		)
		return true
	default:
		p.logger.Error("job not queued, queue full, job dropped",
			zap.String("task", job.Record.Task),
			zap.String("session_id", job.Record.SessionID),
		)
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain.
// Call this during graceful shutdown after the HTTP server has stopped.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// worker is the inner worker thread that continuously pulls jobs off the jobs queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", zap.Uint("worker_id", id))

	for job := range p.queue {
		p.processJob(job)
	}

	p.logger.Debug("archive worker stopped", zap.Uint("worker_id", id))
}

// processJob archives the answer record and publishes the recorded event.
func (p *Pool) processJob(job Job) {
	ctx := context.Background()

	record := job.Record
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := p.config.Driver.Save(ctx, record); err != nil {
		p.logger.Error("async answer archive failed",
			zap.String("task", record.Task),
			zap.String("session_id", record.SessionID),
			zap.Error(err),
		)
		return
	}

	p.logger.Info("answer archived",
		zap.String("record_id", record.ID),
		zap.String("task", record.Task),
	)

	if p.config.Publisher == nil {
		return
	}

	event := &eventstream.AnswerRecordedEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventstream.EventTypeAnswerRecorded,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		RecordID:      record.ID,
		SessionID:     record.SessionID,
		Task:          record.Task,
		Query:         record.Query,
		UsedContext:   job.UsedContext,
		AnswerBytes:   len(record.Answer),
	}

	if err := p.config.Publisher.PublishAnswer(ctx, event); err != nil {
		p.logger.Warn("failed to publish answer event",
			zap.String("record_id", record.ID),
			zap.Error(err),
		)
	}
}

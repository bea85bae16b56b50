package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Job is one unit of background work. Its error is logged, never returned
// to the submitter.
type Job func(ctx context.Context) error

var (
	ErrPoolClosed = errors.New("working pool is closed")
	ErrQueueFull  = errors.New("working pool queue is full")
)

// WorkingPool runs submitted jobs on a fixed number of goroutines.
type WorkingPool struct {
	NumWorkers int
	jobChan    chan Job

	mu     sync.RWMutex
	closed bool
}

func NewWorkingPool(numWorkers int, queueSize int) *WorkingPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &WorkingPool{
		NumWorkers: numWorkers,
		jobChan:    make(chan Job, queueSize),
	}
}

// SubmitJob enqueues job without blocking. A full queue drops the job.
func (p *WorkingPool) SubmitJob(name string, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	wrapped := func(ctx context.Context) error {
		err := job(ctx)
		if err != nil {
			return errors.Join(errors.New(name), err)
		}
		return nil
	}
	select {
	case p.jobChan <- wrapped:
		return nil
	default:
		slog.Warn("[WorkingPool] queue full, job dropped", "job", name)
		return ErrQueueFull
	}
}

// Start runs the workers until ctx is canceled, then drains queued jobs
// with a fresh context and returns.
func (p *WorkingPool) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()

	var workerWg sync.WaitGroup
	for i := range p.NumWorkers {
		workerWg.Add(1)
		go p.worker(&workerWg, i+1)
	}

	<-ctx.Done()

	slog.Info("[WorkingPool] Shutdown signaled. Closing job channel.")
	p.mu.Lock()
	p.closed = true
	close(p.jobChan)
	p.mu.Unlock()

	workerWg.Wait()
	slog.Info("[WorkingPool] All workers stopped.")
}

func (p *WorkingPool) worker(wg *sync.WaitGroup, id int) {
	defer wg.Done()
	slog.Debug("[WorkingPool] worker started", "worker_id", id)

	for job := range p.jobChan {
		p.safeExecution(job, id)
	}
	slog.Debug("[WorkingPool] job channel closed, worker exiting", "worker_id", id)
}

func (p *WorkingPool) safeExecution(job Job, workerID int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[WorkingPool] panic recovered in job", "worker_id", workerID, "panic", r)
		}
	}()

	err = job(context.Background())
	if err != nil {
		slog.Error("[WorkingPool] error executing job", "worker_id", workerID, "error", err)
	}
	return err
}

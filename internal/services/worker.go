package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job is one document of one screening batch. Documents share nothing but
// the batch's read-only requirement, so jobs run independently in any
// order.
type Job struct {
	ScreeningID uuid.UUID
	DocumentID  uuid.UUID
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(job Job)
}

type worker struct {
	evaluatorService EvaluatorService
	jobQueue         chan Job
	concurrency      int
	wg               sync.WaitGroup
	stopChan         chan struct{}
	logger           *zap.Logger
}

func NewWorker(evaluatorService EvaluatorService, concurrency int, logger *zap.Logger) Worker {
	return &worker{
		evaluatorService: evaluatorService,
		jobQueue:         make(chan Job, 100),
		concurrency:      concurrency,
		stopChan:         make(chan struct{}),
		logger:           logger,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting worker pool", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.logger.Info("stopping worker pool")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("worker pool stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(job Job) {
	select {
	case w.jobQueue <- job:
	case <-w.stopChan:
		w.logger.Warn("worker stopped, dropping job",
			zap.String("screening_id", job.ScreeningID.String()),
			zap.String("document_id", job.DocumentID.String()),
		)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("worker stopped", zap.Int("worker_id", workerID))
			return
		case job := <-w.jobQueue:
			if err := w.evaluatorService.ProcessDocument(ctx, job.ScreeningID, job.DocumentID); err != nil {
				w.logger.Error("failed to process job",
					zap.Int("worker_id", workerID),
					zap.String("screening_id", job.ScreeningID.String()),
					zap.String("document_id", job.DocumentID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

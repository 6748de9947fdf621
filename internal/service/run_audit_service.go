package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
)

// SchedulingRunStore persists and lists run audit records.
type SchedulingRunStore interface {
	Insert(ctx context.Context, run *models.SchedulingRun) error
	List(ctx context.Context, filter models.SchedulingRunFilter) ([]models.SchedulingRun, error)
}

// RunAuditConfig tunes the background writer.
type RunAuditConfig struct {
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

// RunAuditService writes run metadata off the request path through a retrying job queue.
type RunAuditService struct {
	store   SchedulingRunStore
	queue   *jobs.Queue[models.SchedulingRun]
	metrics *MetricsService
	logger  *zap.Logger
}

// NewRunAuditService wires the audit queue to the store.
func NewRunAuditService(store SchedulingRunStore, metrics *MetricsService, logger *zap.Logger, cfg RunAuditConfig) *RunAuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &RunAuditService{store: store, metrics: metrics, logger: logger}
	svc.queue = jobs.NewQueue("run-audit", svc.persist, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the queue workers.
func (s *RunAuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop halts the workers.
func (s *RunAuditService) Stop() {
	s.queue.Stop()
}

// Record queues a run for persistence.
func (s *RunAuditService) Record(run models.SchedulingRun) error {
	if _, err := s.queue.Enqueue(run); err != nil {
		return appErrors.Wrap(err, appErrors.ErrQueueUnavailable.Code, appErrors.ErrQueueUnavailable.Status, appErrors.ErrQueueUnavailable.Message)
	}
	return nil
}

// List returns recent runs matching the query.
func (s *RunAuditService) List(ctx context.Context, query dto.SchedulingRunQuery) ([]models.SchedulingRun, error) {
	return s.store.List(ctx, models.SchedulingRunFilter{
		Outcome: models.SchedulingRunOutcome(query.Outcome),
		Limit:   query.Limit,
	})
}

func (s *RunAuditService) persist(ctx context.Context, job jobs.Job[models.SchedulingRun]) error {
	run := job.Payload
	start := time.Now()
	err := s.store.Insert(ctx, &run)
	s.metrics.ObserveDBQuery("insert_scheduling_run", time.Since(start))
	if err != nil {
		return err
	}
	s.logger.Debug("scheduling run recorded", zap.String("run_id", run.ID), zap.Int("attempt", job.Attempt))
	return nil
}

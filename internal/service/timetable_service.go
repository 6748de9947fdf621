package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/export"
)

type timetableSolver interface {
	GenerateTimetable(courses []models.Course, instructors []models.Instructor, rooms []models.Room, groups []models.StudentGroup, sections []models.Section) scheduler.Result
}

// RunAuditor records finished runs and lists past ones.
type RunAuditor interface {
	Record(run models.SchedulingRun) error
	List(ctx context.Context, query dto.SchedulingRunQuery) ([]models.SchedulingRun, error)
}

// TimetableServiceConfig governs request limits and caching.
type TimetableServiceConfig struct {
	MaxComponents int
	CacheTTL      time.Duration
}

// TimetableRun is the outcome of one generate request.
type TimetableRun struct {
	Response dto.GenerateTimetableResponse
	CacheHit bool
	// Fault is set when the engine aborted on an unexpected error.
	Fault bool
}

// TimetableService validates scheduling requests, runs the engine and records each run.
type TimetableService struct {
	solver    timetableSolver
	cache     *CacheService
	audit     RunAuditor
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	cfg       TimetableServiceConfig
}

// NewTimetableService wires the timetable pipeline. cache, audit and metrics are optional.
func NewTimetableService(
	solver timetableSolver,
	cache *CacheService,
	audit RunAuditor,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableServiceConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if solver == nil {
		solver = scheduler.New(logger)
	}
	return &TimetableService{
		solver:    solver,
		cache:     cache,
		audit:     audit,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		cfg:       cfg,
	}
}

// Generate schedules the request. Engine outcomes, including rejected input, are reported in
// the response; the error is reserved for requests that never reach the engine.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*TimetableRun, error) {
	start := time.Now()
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	key, err := requestHash(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "hash timetable request")
	}

	run := &TimetableRun{}
	run.CacheHit = s.cache.Get(ctx, key, &run.Response)
	if !run.CacheHit {
		result := s.solve(toTimetableInput(req))
		run.Response = toTimetableResponse(result)
		run.Fault = result.Fault
		if !run.Fault {
			_ = s.cache.Set(ctx, key, run.Response, s.cfg.CacheTTL)
		}
	}
	run.Response.RunID = uuid.NewString()

	s.finish(run, key, time.Since(start))
	return run, nil
}

// Export schedules the request and renders the sessions in the requested format. The run
// is returned alongside so callers can report failed runs; the export is nil for them.
func (s *TimetableService) Export(ctx context.Context, req dto.GenerateTimetableRequest, format dto.ExportFormat) (*dto.ExportedTimetable, *TimetableRun, error) {
	switch format {
	case dto.ExportCSV, dto.ExportPDF, dto.ExportJSON:
	default:
		return nil, nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}

	run, err := s.Generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if !run.Response.Success {
		return nil, run, nil
	}

	rendered, err := s.render(run.Response, format)
	if err != nil {
		return nil, run, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render timetable export")
	}
	return rendered, run, nil
}

// CacheEnabled reports whether generate results are served from the cache.
func (s *TimetableService) CacheEnabled() bool {
	return s.cache.Enabled()
}

// Stats summarises the request without scheduling it.
func (s *TimetableService) Stats(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.ProblemStatsResponse, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}
	in := toTimetableInput(req)
	stats := toProblemStats(scheduler.Summarize(in.courses, in.instructors, in.rooms, in.groups, in.sections))
	return &stats, nil
}

// ListRuns returns recent run audit records.
func (s *TimetableService) ListRuns(ctx context.Context, query dto.SchedulingRunQuery) ([]models.SchedulingRun, error) {
	if s.audit == nil {
		return nil, appErrors.ErrAuditDisabled
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid run query")
	}
	return s.audit.List(ctx, query)
}

func (s *TimetableService) checkRequest(req dto.GenerateTimetableRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	if limit := s.cfg.MaxComponents; limit > 0 {
		if count := req.ComponentCount(); count > limit {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("request has %d components, limit is %d", count, limit))
		}
	}
	return nil
}

// solve runs the engine, converting a panic in the conversion or engine code into a fault.
func (s *TimetableService) solve(in timetableInput) (result scheduler.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("timetable engine panicked", zap.Any("panic", rec))
			result = scheduler.Result{
				Success: false,
				Message: scheduler.MessageFault,
				Errors:  []string{fmt.Sprintf("Unexpected error: %v", rec)},
				Fault:   true,
			}
		}
	}()
	return s.solver.GenerateTimetable(in.courses, in.instructors, in.rooms, in.groups, in.sections)
}

func (s *TimetableService) finish(run *TimetableRun, key string, elapsed time.Duration) {
	resp := run.Response
	record := models.SchedulingRun{
		ID:             resp.RunID,
		RequestHash:    key,
		Outcome:        outcomeOf(run),
		WarningCount:   len(resp.Warnings),
		ErrorCount:     len(resp.Errors),
		OptimizerMoves: resp.OptimizerMoves,
		CacheHit:       run.CacheHit,
		DurationMs:     elapsed.Milliseconds(),
		CreatedAt:      time.Now().UTC(),
	}
	completion := ""
	if resp.Statistics != nil {
		record.TotalComponents = resp.Statistics.TotalComponents
		record.ScheduledComponents = resp.Statistics.ScheduledComponents
		completion = resp.Statistics.CompletionRate
	}

	s.metrics.ObserveRun(record)
	s.logger.Info("timetable run finished",
		zap.String("run_id", record.ID),
		zap.String("outcome", string(record.Outcome)),
		zap.String("completion", completion),
		zap.Int("warnings", record.WarningCount),
		zap.Bool("cache_hit", record.CacheHit),
		zap.Duration("duration", elapsed),
	)

	if s.audit == nil {
		return
	}
	if err := s.audit.Record(record); err != nil {
		s.logger.Warn("run audit skipped", zap.String("run_id", record.ID), zap.Error(err))
	}
}

func (s *TimetableService) render(resp dto.GenerateTimetableResponse, format dto.ExportFormat) (*dto.ExportedTimetable, error) {
	rows := exportRows(resp)
	name := "timetable-" + resp.RunID
	switch format {
	case dto.ExportCSV:
		data, err := s.csv.Render(rows)
		if err != nil {
			return nil, err
		}
		return &dto.ExportedTimetable{Filename: name + ".csv", ContentType: "text/csv", Data: data}, nil
	case dto.ExportPDF:
		title := fmt.Sprintf("Timetable %s (%s)", resp.RunID, resp.Statistics.CompletionRate)
		data, err := s.pdf.Render(exportDataset(rows), title)
		if err != nil {
			return nil, err
		}
		return &dto.ExportedTimetable{Filename: name + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return nil, err
		}
		return &dto.ExportedTimetable{Filename: name + ".json", ContentType: "application/json", Data: data}, nil
	}
}

func outcomeOf(run *TimetableRun) models.SchedulingRunOutcome {
	switch {
	case run.Fault:
		return models.SchedulingRunFaulted
	case run.Response.Success:
		return models.SchedulingRunSucceeded
	default:
		return models.SchedulingRunRejected
	}
}

// requestHash keys the result cache. The engine is deterministic, so equal requests share a result.
func requestHash(req dto.GenerateTimetableRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

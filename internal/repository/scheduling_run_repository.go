package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const (
	defaultRunListLimit = 50
	maxRunListLimit     = 200
)

// SchedulingRunRepository stores the audit trail of scheduling runs.
type SchedulingRunRepository struct {
	db *sqlx.DB
}

// NewSchedulingRunRepository constructs repository.
func NewSchedulingRunRepository(db *sqlx.DB) *SchedulingRunRepository {
	return &SchedulingRunRepository{db: db}
}

// EnsureSchema creates the scheduling_runs table when it does not exist yet.
func (r *SchedulingRunRepository) EnsureSchema(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS scheduling_runs (
	id TEXT PRIMARY KEY,
	request_hash TEXT NOT NULL,
	outcome TEXT NOT NULL,
	total_components INTEGER NOT NULL DEFAULT 0,
	scheduled_components INTEGER NOT NULL DEFAULT 0,
	warning_count INTEGER NOT NULL DEFAULT 0,
	error_count INTEGER NOT NULL DEFAULT 0,
	optimizer_moves INTEGER NOT NULL DEFAULT 0,
	cache_hit BOOLEAN NOT NULL DEFAULT FALSE,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure scheduling_runs table: %w", err)
	}
	return nil
}

// Insert persists one run record.
func (r *SchedulingRunRepository) Insert(ctx context.Context, run *models.SchedulingRun) error {
	if run == nil {
		return fmt.Errorf("scheduling run payload is nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	const query = `
INSERT INTO scheduling_runs (id, request_hash, outcome, total_components, scheduled_components, warning_count, error_count, optimizer_moves, cache_hit, duration_ms, created_at)
VALUES (:id, :request_hash, :outcome, :total_components, :scheduled_components, :warning_count, :error_count, :optimizer_moves, :cache_hit, :duration_ms, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("insert scheduling run: %w", err)
	}
	return nil
}

// List returns the newest runs first, optionally restricted to one outcome.
func (r *SchedulingRunRepository) List(ctx context.Context, filter models.SchedulingRunFilter) ([]models.SchedulingRun, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultRunListLimit
	}
	if limit > maxRunListLimit {
		limit = maxRunListLimit
	}

	var (
		conditions []string
		args       []interface{}
	)
	if filter.Outcome != "" {
		args = append(args, string(filter.Outcome))
		conditions = append(conditions, fmt.Sprintf("outcome = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, request_hash, outcome, total_components, scheduled_components, warning_count, error_count, optimizer_moves, cache_hit, duration_ms, created_at FROM scheduling_runs`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)))

	runs := []models.SchedulingRun{}
	if err := r.db.SelectContext(ctx, &runs, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list scheduling runs: %w", err)
	}
	return runs, nil
}

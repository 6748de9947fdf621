package models

import "time"

// SchedulingRunOutcome classifies how a run ended.
type SchedulingRunOutcome string

const (
	SchedulingRunSucceeded SchedulingRunOutcome = "SUCCEEDED"
	SchedulingRunRejected  SchedulingRunOutcome = "REJECTED"
	SchedulingRunFaulted   SchedulingRunOutcome = "FAULTED"
)

// SchedulingRun is the audit record kept for each generation request. It stores run metadata only.
type SchedulingRun struct {
	ID                  string               `db:"id" json:"id"`
	RequestHash         string               `db:"request_hash" json:"request_hash"`
	Outcome             SchedulingRunOutcome `db:"outcome" json:"outcome"`
	TotalComponents     int                  `db:"total_components" json:"total_components"`
	ScheduledComponents int                  `db:"scheduled_components" json:"scheduled_components"`
	WarningCount        int                  `db:"warning_count" json:"warning_count"`
	ErrorCount          int                  `db:"error_count" json:"error_count"`
	OptimizerMoves      int                  `db:"optimizer_moves" json:"optimizer_moves"`
	CacheHit            bool                 `db:"cache_hit" json:"cache_hit"`
	DurationMs          int64                `db:"duration_ms" json:"duration_ms"`
	CreatedAt           time.Time            `db:"created_at" json:"created_at"`
}

// SchedulingRunFilter narrows audit listings.
type SchedulingRunFilter struct {
	Outcome SchedulingRunOutcome
	Limit   int
}

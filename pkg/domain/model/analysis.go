package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/citops/promisetrack/pkg/domain/types"
)

// ForgottenReasonDeadlineExceedsOneYear explains why a nominal promise was
// reclassified as no promise: its deadline lies beyond the one-year horizon.
const ForgottenReasonDeadlineExceedsOneYear = "deadline_exceeds_one_year"

// AnalysisResult is the outcome of classifying one executor reply against
// one task. It is created once per classification call and never mutated
// afterwards.
type AnalysisResult struct {
	ID           string `json:"id"`
	TaskID       int64  `json:"task_id"`
	ResponseText string `json:"response_text"`
	IsPromise    bool   `json:"is_promise"`
	// PromiseRaw preserves the verbatim classifier answer for audit.
	PromiseRaw      string               `json:"promise_analysis_result"`
	Deadline        types.Deadline       `json:"deadline,omitempty"`
	DeadlineStatus  types.DeadlineStatus `json:"deadline_status,omitempty"`
	ForgottenReason string               `json:"forgotten_reason,omitempty"`
	// Failure is set when the classification call itself failed after all
	// attempts. It lets callers distinguish a degraded result from a
	// genuine negative verdict without re-parsing answer text.
	Failure   string    `json:"failure,omitempty"`
	Timestamp time.Time `json:"analysis_timestamp"`
}

// NewAnalysisResult creates a fresh analysis record for the given reply.
func NewAnalysisResult(taskID int64, responseText string, now time.Time) *AnalysisResult {
	return &AnalysisResult{
		ID:           uuid.NewString(),
		TaskID:       taskID,
		ResponseText: responseText,
		Timestamp:    now,
	}
}

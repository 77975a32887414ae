package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/repos"
	"github.com/yungbote/staffing-graph-backend/internal/types"
)

const (
	StatusSuccess        = "success"
	StatusPartialSuccess = "partial_success"
	StatusError          = "error"
)

// StepError is one failed sub-step inside a multi-step upsert. The batch
// keeps going; the caller gets the full list back.
type StepError struct {
	Step    string `json:"step"`
	Item    string `json:"item,omitempty"`
	Message string `json:"message"`
}

// UpsertResult reports a person upsert. Status is partial_success when any
// sub-step failed while others applied.
type UpsertResult struct {
	Status      string      `json:"status"`
	PersonID    string      `json:"person_id"`
	SkillsAdded int         `json:"skills_added"`
	Errors      []StepError `json:"errors,omitempty"`
}

// RFPSaveResult reports an RFP save, including requirements that were
// skipped as unusable.
type RFPSaveResult struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Errors []StepError `json:"errors,omitempty"`
}

// BulkResult reports a bulk project ingestion.
type BulkResult struct {
	Status    string   `json:"status"`
	Processed int      `json:"processed"`
	Total     int      `json:"total"`
	Errors    []string `json:"errors,omitempty"`
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// recordRun persists an audit row for one ingestion call. Best-effort: a
// missing repo or a write failure never affects the ingestion outcome.
func recordRun(ctx context.Context, log *logger.Logger, runs repos.IngestionRunRepo, kind, source, status string, processed, total int, errs any) {
	if runs == nil {
		return
	}
	run := &types.IngestionRun{
		ID:         uuid.New(),
		Kind:       kind,
		SourceName: source,
		Status:     status,
		Processed:  processed,
		Total:      total,
	}
	if errs != nil {
		if raw, err := json.Marshal(errs); err == nil {
			run.Errors = datatypes.JSON(raw)
		}
	}
	if err := runs.Create(ctx, nil, run); err != nil && log != nil {
		log.Warn("ingestion audit write failed", "kind", kind, "error", err)
	}
}

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IngestionRun is the audit record for one upsert call (CV, RFP or project
// batch). Per-step errors land in the JSON column so partial failures stay
// inspectable after the fact.
type IngestionRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Kind       string         `gorm:"index" json:"kind"` // cv | rfp | projects
	SourceName string         `json:"source_name,omitempty"`
	Status     string         `json:"status"` // success | partial_success | error
	Processed  int            `json:"processed"`
	Total      int            `json:"total"`
	Errors     datatypes.JSON `json:"errors,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

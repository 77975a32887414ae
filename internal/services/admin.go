package services

import (
	"context"
	"fmt"

	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/repos"
	"github.com/yungbote/staffing-graph-backend/internal/types"
)

// ResetResult reports a graph wipe with the post-wipe counts as proof.
type ResetResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Nodes   int64  `json:"nodes"`
	Rels    int64  `json:"relationships"`
}

// AdminService covers the destructive and audit endpoints.
type AdminService struct {
	store graph.Store
	log   *logger.Logger
	runs  repos.IngestionRunRepo
}

func NewAdminService(store graph.Store, baseLog *logger.Logger, runs repos.IngestionRunRepo) *AdminService {
	return &AdminService{
		store: store,
		log:   baseLog.With("service", "AdminService"),
		runs:  runs,
	}
}

// Reset wipes the whole graph and reports the counts left behind.
func (s *AdminService) Reset(ctx context.Context) (*ResetResult, error) {
	if err := s.store.Reset(ctx); err != nil {
		return nil, err
	}
	nodes, rels, err := s.store.Counts(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Warn("graph reset", "nodes", nodes, "relationships", rels)
	return &ResetResult{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("database reset, %d nodes and %d relationships remain", nodes, rels),
		Nodes:   nodes,
		Rels:    rels,
	}, nil
}

// ListIngestions returns the most recent ingestion audit rows. An empty list
// is returned when no relational database is configured.
func (s *AdminService) ListIngestions(ctx context.Context, limit int) ([]*types.IngestionRun, error) {
	if s.runs == nil {
		return []*types.IngestionRun{}, nil
	}
	return s.runs.ListRecent(ctx, nil, limit)
}

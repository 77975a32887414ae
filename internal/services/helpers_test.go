package services

import (
	"context"
	"testing"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/graph/memory"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func mustUpsertPerson(t *testing.T, store *memory.Store, log *logger.Logger, cv domain.CVStructure) *UpsertResult {
	t.Helper()
	svc := NewCVService(store, log, nil)
	result, err := svc.UpsertPerson(context.Background(), cv)
	if err != nil {
		t.Fatalf("UpsertPerson(%q): %v", cv.FullName, err)
	}
	return result
}

func mustSaveRFP(t *testing.T, store *memory.Store, log *logger.Logger, rfp domain.RFPStructure) *RFPSaveResult {
	t.Helper()
	svc := NewRFPService(store, log, nil, nil)
	result, err := svc.SaveRFP(context.Background(), rfp)
	if err != nil {
		t.Fatalf("SaveRFP(%q): %v", rfp.ID, err)
	}
	return result
}

func mustCounts(t *testing.T, store graph.Store) (int64, int64) {
	t.Helper()
	nodes, rels, err := store.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	return nodes, rels
}

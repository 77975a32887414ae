package services

import (
	"context"
	"testing"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph/memory"
)

func TestAdminReset(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)

	addPerson(t, store, "Ana Lima", map[string]domain.ProficiencyLevel{"Go": domain.ProficiencyExpert})
	mustSaveRFP(t, store, log, sampleRFP("RFP-001"))

	svc := NewAdminService(store, log, nil)
	result, err := svc.Reset(context.Background())
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if result.Nodes != 0 || result.Rels != 0 {
		t.Fatalf("post-reset counts = (%d, %d), want (0, 0)", result.Nodes, result.Rels)
	}

	nodes, rels := mustCounts(t, store)
	if nodes != 0 || rels != 0 {
		t.Fatalf("store counts = (%d, %d), want empty", nodes, rels)
	}
}

func TestAdminListIngestionsWithoutDatabase(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)

	svc := NewAdminService(store, log, nil)
	runs, err := svc.ListIngestions(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListIngestions: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("runs = %v, want empty without a configured database", runs)
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/graph/memory"
	pkgerrors "github.com/yungbote/staffing-graph-backend/internal/pkg/errors"
)

func conversionFixture(t *testing.T) (*memory.Store, *ConversionService) {
	t.Helper()
	store := memory.NewStore()
	log := testLogger(t)

	addPerson(t, store, "Ana Lima", map[string]domain.ProficiencyLevel{"Go": domain.ProficiencyExpert})
	addPerson(t, store, "Bo Chen", map[string]domain.ProficiencyLevel{"Sql": domain.ProficiencyAdvanced})
	mustSaveRFP(t, store, log, sampleRFP("RFP-001"))

	return store, NewConversionService(store, log, nil)
}

func TestConvertRFPToProject(t *testing.T) {
	ctx := context.Background()
	store, svc := conversionFixture(t)

	result, err := svc.ConvertRFPToProject(ctx, "RFP-001", []string{"ana lima", "Bo Chen"})
	if err != nil {
		t.Fatalf("ConvertRFPToProject: %v", err)
	}
	if result.ProjectID != "PROJ-RFP-001" {
		t.Fatalf("project id = %q, want PROJ-RFP-001", result.ProjectID)
	}

	proj, err := store.GetNode(ctx, graph.KindProject, "PROJ-RFP-001")
	if err != nil {
		t.Fatalf("project node missing: %v", err)
	}
	if proj.Props.String("status") != "active" {
		t.Errorf("status = %q, want active", proj.Props.String("status"))
	}
	// 4-month duration from 2025-09-01.
	if got := proj.Props.String("end_date"); got != "2026-01-01" {
		t.Errorf("end_date = %q, want 2026-01-01", got)
	}
	if proj.Props.String("title") != "Payment Platform Rebuild" {
		t.Errorf("title = %q, want copied from RFP", proj.Props.String("title"))
	}

	// NEEDS edges become REQUIRES with level and mandatory preserved.
	reqs, err := store.OutEdges(ctx, "PROJ-RFP-001", graph.RelRequires)
	if err != nil {
		t.Fatalf("OutEdges: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("REQUIRES count = %d, want 2", len(reqs))
	}
	for _, e := range reqs {
		if e.ToKey == "Go" {
			if e.Props.String("minimum_level") != "Advanced" || !e.Props.Bool("mandatory") {
				t.Errorf("Go requirement = %+v, want Advanced/mandatory", e.Props)
			}
		}
	}

	// Both programmers assigned at full allocation with mirrored dates.
	team, err := store.InEdges(ctx, "PROJ-RFP-001", graph.RelAssignedTo)
	if err != nil {
		t.Fatalf("InEdges: %v", err)
	}
	if len(team) != 2 {
		t.Fatalf("team size = %d, want 2", len(team))
	}
	for _, e := range team {
		if e.Props.Int("allocation_percentage") != 100 {
			t.Errorf("allocation for %s = %d, want 100", e.FromKey, e.Props.Int("allocation_percentage"))
		}
		if e.Props.String("end_date") != "2026-01-01" {
			t.Errorf("assignment end_date = %q, want 2026-01-01", e.Props.String("end_date"))
		}
	}

	// The RFP and its edges are gone.
	if _, err := store.GetNode(ctx, graph.KindRFP, "RFP-001"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("RFP still present: %v", err)
	}
	if needs, _ := store.OutEdges(ctx, "RFP-001", graph.RelNeeds); len(needs) != 0 {
		t.Errorf("NEEDS edges survived conversion: %v", needs)
	}
}

func TestConvertNonexistentRFPLeavesGraphUnchanged(t *testing.T) {
	ctx := context.Background()
	store, svc := conversionFixture(t)

	nodesBefore, relsBefore := mustCounts(t, store)

	_, err := svc.ConvertRFPToProject(ctx, "RFP-404", []string{"Ana Lima"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	nodesAfter, relsAfter := mustCounts(t, store)
	if nodesBefore != nodesAfter || relsBefore != relsAfter {
		t.Fatalf("graph changed: (%d, %d) -> (%d, %d)", nodesBefore, relsBefore, nodesAfter, relsAfter)
	}
}

func TestConvertTwiceSecondFailsNotFound(t *testing.T) {
	ctx := context.Background()
	_, svc := conversionFixture(t)

	if _, err := svc.ConvertRFPToProject(ctx, "RFP-001", []string{"Ana Lima"}); err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	_, err := svc.ConvertRFPToProject(ctx, "RFP-001", []string{"Ana Lima"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("second conversion error = %v, want ErrNotFound", err)
	}
}

func TestConvertUnknownProgrammerAborts(t *testing.T) {
	ctx := context.Background()
	store, svc := conversionFixture(t)

	nodesBefore, relsBefore := mustCounts(t, store)

	_, err := svc.ConvertRFPToProject(ctx, "RFP-001", []string{"Ana Lima", "Nobody Here"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	// Atomicity: the half-built project, its requirement copies and Ana's
	// assignment must all have been discarded, and the RFP must survive.
	nodesAfter, relsAfter := mustCounts(t, store)
	if nodesBefore != nodesAfter || relsBefore != relsAfter {
		t.Fatalf("partial state retained: (%d, %d) -> (%d, %d)", nodesBefore, relsBefore, nodesAfter, relsAfter)
	}
	if _, err := store.GetNode(ctx, graph.KindRFP, "RFP-001"); err != nil {
		t.Errorf("RFP lost despite aborted conversion: %v", err)
	}
}

func TestConvertDefaultDuration(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	log := testLogger(t)

	addPerson(t, store, "Ana Lima", map[string]domain.ProficiencyLevel{"Go": domain.ProficiencyExpert})
	rfp := sampleRFP("RFP-002")
	rfp.DurationMonths = 0
	mustSaveRFP(t, store, log, rfp)

	svc := NewConversionService(store, log, nil)
	result, err := svc.ConvertRFPToProject(ctx, "RFP-002", []string{"Ana Lima"})
	if err != nil {
		t.Fatalf("ConvertRFPToProject: %v", err)
	}
	// Six calendar months from 2025-09-01 when the RFP has no duration.
	if result.EndDate != "2026-03-01" {
		t.Fatalf("end date = %q, want 2026-03-01", result.EndDate)
	}
}

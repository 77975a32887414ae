package services

import (
	"context"
	"testing"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/graph/memory"
)

func sampleProject(id string, status domain.ProjectStatus) domain.ProjectStructure {
	return domain.ProjectStructure{
		ID:          id,
		Name:        "Data Platform",
		Client:      "Initech",
		Description: "Warehouse buildout",
		StartDate:   "2025-01-01",
		EndDate:     "2025-12-31",
		Status:      status,
		TeamSize:    2,
		Requirements: []domain.ProjectRequirement{
			{SkillName: "sql", MinProficiency: domain.ProficiencyAdvanced, IsMandatory: true},
		},
		AssignedProgrammers: []domain.AssignedProgrammer{
			{ProgrammerName: "ana lima", AssignmentStartDate: "2025-01-01", AssignmentEndDate: "2025-12-31"},
		},
	}
}

func TestUpsertProjectActiveUsesAssignedTo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	log := testLogger(t)

	addPerson(t, store, "Ana Lima", map[string]domain.ProficiencyLevel{"Sql": domain.ProficiencyExpert})
	svc := NewProjectService(store, log, nil, 2)

	stepErrs, err := svc.UpsertProject(ctx, sampleProject("PROJ-1", domain.ProjectActive))
	if err != nil {
		t.Fatalf("UpsertProject: %v", err)
	}
	if len(stepErrs) != 0 {
		t.Fatalf("step errors: %v", stepErrs)
	}

	assigned, err := store.InEdges(ctx, "PROJ-1", graph.RelAssignedTo)
	if err != nil {
		t.Fatalf("InEdges: %v", err)
	}
	if len(assigned) != 1 || assigned[0].FromKey != "Ana Lima" {
		t.Fatalf("ASSIGNED_TO = %+v, want Ana Lima", assigned)
	}
	if got := assigned[0].Props.String("end_date"); got != "2025-12-31" {
		t.Errorf("assignment end_date = %q, want 2025-12-31", got)
	}
	if worked, _ := store.InEdges(ctx, "PROJ-1", graph.RelWorkedOn); len(worked) != 0 {
		t.Errorf("active project created WORKED_ON edges: %v", worked)
	}
}

func TestUpsertProjectCompletedUsesWorkedOn(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	log := testLogger(t)

	addPerson(t, store, "Ana Lima", map[string]domain.ProficiencyLevel{"Sql": domain.ProficiencyExpert})
	svc := NewProjectService(store, log, nil, 2)

	if _, err := svc.UpsertProject(ctx, sampleProject("PROJ-2", domain.ProjectCompleted)); err != nil {
		t.Fatalf("UpsertProject: %v", err)
	}

	worked, err := store.InEdges(ctx, "PROJ-2", graph.RelWorkedOn)
	if err != nil {
		t.Fatalf("InEdges: %v", err)
	}
	if len(worked) != 1 {
		t.Fatalf("WORKED_ON count = %d, want 1", len(worked))
	}
	if assigned, _ := store.InEdges(ctx, "PROJ-2", graph.RelAssignedTo); len(assigned) != 0 {
		t.Errorf("completed project created ASSIGNED_TO edges: %v", assigned)
	}
}

func TestUpsertProjectUnknownProgrammerReported(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	log := testLogger(t)
	svc := NewProjectService(store, log, nil, 2)

	stepErrs, err := svc.UpsertProject(ctx, sampleProject("PROJ-3", domain.ProjectActive))
	if err != nil {
		t.Fatalf("UpsertProject: %v", err)
	}
	if len(stepErrs) != 1 || stepErrs[0].Step != "assignments" {
		t.Fatalf("step errors = %v, want one assignments failure", stepErrs)
	}
	// The project itself and its requirement still applied.
	if _, err := store.GetNode(ctx, graph.KindProject, "PROJ-3"); err != nil {
		t.Errorf("project node missing: %v", err)
	}
	reqs, _ := store.OutEdges(ctx, "PROJ-3", graph.RelRequires)
	if len(reqs) != 1 {
		t.Errorf("REQUIRES count = %d, want 1", len(reqs))
	}
}

func TestBulkUpsertProjects(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	log := testLogger(t)

	addPerson(t, store, "Ana Lima", map[string]domain.ProficiencyLevel{"Sql": domain.ProficiencyExpert})
	svc := NewProjectService(store, log, nil, 4)

	batch := []domain.ProjectStructure{
		sampleProject("PROJ-10", domain.ProjectActive),
		sampleProject("PROJ-11", domain.ProjectCompleted),
		{ID: "", Name: "broken"},
	}
	result := svc.BulkUpsertProjects(ctx, batch)

	if result.Total != 3 {
		t.Fatalf("total = %d, want 3", result.Total)
	}
	if result.Processed != 2 {
		t.Fatalf("processed = %d, want 2", result.Processed)
	}
	if result.Status != StatusPartialSuccess {
		t.Fatalf("status = %q, want %q", result.Status, StatusPartialSuccess)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly the blank-id failure", result.Errors)
	}

	projects, err := store.ListNodes(ctx, graph.KindProject)
	if err != nil {
		t.Fatalf("ListNodes: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("project count = %d, want 2", len(projects))
	}
}

func TestListProjects(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	log := testLogger(t)

	addPerson(t, store, "Ana Lima", map[string]domain.ProficiencyLevel{"Sql": domain.ProficiencyExpert})
	svc := NewProjectService(store, log, nil, 2)

	if _, err := svc.UpsertProject(ctx, sampleProject("PROJ-20", domain.ProjectActive)); err != nil {
		t.Fatalf("UpsertProject: %v", err)
	}

	out, err := svc.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("project count = %d, want 1", len(out))
	}
	p := out[0]
	if p.Title != "Data Platform" || p.Status != domain.ProjectActive {
		t.Errorf("project = %+v", p)
	}
	if len(p.RequiredSkills) != 1 || p.RequiredSkills[0] != "Sql" {
		t.Errorf("required skills = %v, want [Sql]", p.RequiredSkills)
	}
	if len(p.AssignedTeam) != 1 || p.AssignedTeam[0].ID != "Ana Lima" {
		t.Errorf("team = %v, want Ana Lima", p.AssignedTeam)
	}
}

package services

import (
	"context"
	"testing"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/graph/memory"
)

func sampleCV() domain.CVStructure {
	return domain.CVStructure{
		FullName:       "maria   garcia",
		Email:          "maria@example.com",
		Summary:        "Backend developer",
		Location:       "madrid",
		UniversityName: "universidad complutense",
		Certifications: []string{"AWS Certified Developer"},
		WorkedFor:      []string{"acme corp", "globex"},
		Skills: []domain.CVSkill{
			{SkillName: "python", Proficiency: domain.ProficiencyExpert},
			{SkillName: "SQL", Proficiency: domain.ProficiencyIntermediate},
		},
	}
}

func TestUpsertPersonCanonicalizesIdentity(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)

	result := mustUpsertPerson(t, store, log, sampleCV())
	if result.Status != StatusSuccess {
		t.Fatalf("status = %q, want %q (errors: %v)", result.Status, StatusSuccess, result.Errors)
	}
	if result.PersonID != "Maria Garcia" {
		t.Fatalf("person id = %q, want canonical %q", result.PersonID, "Maria Garcia")
	}
	if result.SkillsAdded != 2 {
		t.Fatalf("skills added = %d, want 2", result.SkillsAdded)
	}

	if _, err := store.GetNode(context.Background(), graph.KindSkill, "Python"); err != nil {
		t.Errorf("canonical skill node missing: %v", err)
	}
	if _, err := store.GetNode(context.Background(), graph.KindCompany, "Acme Corp"); err != nil {
		t.Errorf("canonical company node missing: %v", err)
	}
}

func TestUpsertPersonIdempotent(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)

	mustUpsertPerson(t, store, log, sampleCV())
	nodesOnce, relsOnce := mustCounts(t, store)

	mustUpsertPerson(t, store, log, sampleCV())
	nodesTwice, relsTwice := mustCounts(t, store)

	if nodesOnce != nodesTwice || relsOnce != relsTwice {
		t.Fatalf("second upsert changed counts: (%d, %d) -> (%d, %d)",
			nodesOnce, relsOnce, nodesTwice, relsTwice)
	}
}

func TestUpsertPersonCaseVariantsConverge(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)

	cv := sampleCV()
	mustUpsertPerson(t, store, log, cv)

	cv.FullName = "MARIA GARCIA"
	cv.Skills[0].SkillName = " PYTHON "
	mustUpsertPerson(t, store, log, cv)

	persons, err := store.ListNodes(context.Background(), graph.KindPerson)
	if err != nil {
		t.Fatalf("ListNodes: %v", err)
	}
	if len(persons) != 1 {
		t.Fatalf("person count = %d, want 1", len(persons))
	}
	skills, err := store.ListNodes(context.Background(), graph.KindSkill)
	if err != nil {
		t.Fatalf("ListNodes: %v", err)
	}
	if len(skills) != 2 {
		t.Fatalf("skill count = %d, want 2", len(skills))
	}
}

func TestUpsertPersonPartialSuccess(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)

	cv := sampleCV()
	cv.Skills = append(cv.Skills, domain.CVSkill{SkillName: "   ", Proficiency: domain.ProficiencyExpert})
	cv.Certifications = append(cv.Certifications, "")

	result := mustUpsertPerson(t, store, log, cv)
	if result.Status != StatusPartialSuccess {
		t.Fatalf("status = %q, want %q", result.Status, StatusPartialSuccess)
	}
	if result.SkillsAdded != 2 {
		t.Errorf("skills added = %d, want the 2 valid ones", result.SkillsAdded)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("error count = %d, want 2 (blank skill, blank certification): %v", len(result.Errors), result.Errors)
	}
	// Valid sub-steps must not be rolled back by the failing ones.
	if _, err := store.GetNode(context.Background(), graph.KindCompany, "Globex"); err != nil {
		t.Errorf("valid company edge rolled back: %v", err)
	}
}

func TestUpsertPersonRejectsUnknownProficiency(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)

	cv := sampleCV()
	cv.Skills = []domain.CVSkill{{SkillName: "go", Proficiency: "Wizard"}}

	result := mustUpsertPerson(t, store, log, cv)
	if result.Status != StatusPartialSuccess {
		t.Fatalf("status = %q, want %q", result.Status, StatusPartialSuccess)
	}
	if result.SkillsAdded != 0 {
		t.Errorf("skills added = %d, want 0", result.SkillsAdded)
	}
}

func TestUpsertPersonBlankNameRejected(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)
	svc := NewCVService(store, log, nil)

	if _, err := svc.UpsertPerson(context.Background(), domain.CVStructure{FullName: "   "}); err == nil {
		t.Fatal("UpsertPerson with blank name succeeded, want error")
	}
}

func TestListProgrammers(t *testing.T) {
	store := memory.NewStore()
	log := testLogger(t)

	mustUpsertPerson(t, store, log, sampleCV())
	svc := NewCVService(store, log, nil)

	out, err := svc.ListProgrammers(context.Background())
	if err != nil {
		t.Fatalf("ListProgrammers: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("programmer count = %d, want 1", len(out))
	}
	p := out[0]
	if p.ID != "Maria Garcia" {
		t.Errorf("id = %q, want %q", p.ID, "Maria Garcia")
	}
	if len(p.Skills) != 2 {
		t.Errorf("skill count = %d, want 2", len(p.Skills))
	}
	if p.CurrentProject != "" {
		t.Errorf("current project = %q, want empty for unassigned person", p.CurrentProject)
	}
}

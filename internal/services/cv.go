package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/normalization"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/repos"
)

// CVService runs the person upsert protocol: the Person node first, then
// each edge family as an independent sub-step. A failure in one family never
// rolls back the others; everything that applied stays applied.
type CVService struct {
	store graph.Store
	log   *logger.Logger
	runs  repos.IngestionRunRepo
}

func NewCVService(store graph.Store, baseLog *logger.Logger, runs repos.IngestionRunRepo) *CVService {
	return &CVService{
		store: store,
		log:   baseLog.With("service", "CVService"),
		runs:  runs,
	}
}

// UpsertPerson merges one parsed CV into the graph. Calling it twice with
// the same CV leaves the same nodes and edges behind.
func (s *CVService) UpsertPerson(ctx context.Context, cv domain.CVStructure) (*UpsertResult, error) {
	personKey, err := normalization.CanonicalKey(cv.FullName)
	if err != nil {
		return nil, fmt.Errorf("full_name: %w", err)
	}

	props := graph.Props{"name": personKey}
	if v := strings.TrimSpace(cv.Email); v != "" {
		props["email"] = v
	}
	if v := strings.TrimSpace(cv.Summary); v != "" {
		props["bio"] = v
	}
	// The owning node must exist before any edge references it.
	if err := s.store.MergeNode(ctx, graph.KindPerson, personKey, props); err != nil {
		return nil, err
	}

	result := &UpsertResult{PersonID: personKey}

	for _, skill := range cv.Skills {
		if err := s.mergeSkill(ctx, personKey, skill); err != nil {
			result.Errors = append(result.Errors, StepError{Step: "skills", Item: skill.SkillName, Message: err.Error()})
			continue
		}
		result.SkillsAdded++
	}

	for _, company := range cv.WorkedFor {
		if err := s.mergeNamedEdge(ctx, personKey, company, graph.KindCompany, graph.RelWorkedAt); err != nil {
			result.Errors = append(result.Errors, StepError{Step: "work_history", Item: company, Message: err.Error()})
		}
	}

	if strings.TrimSpace(cv.UniversityName) != "" {
		if err := s.mergeNamedEdge(ctx, personKey, cv.UniversityName, graph.KindUniversity, graph.RelStudiedAt); err != nil {
			result.Errors = append(result.Errors, StepError{Step: "education", Item: cv.UniversityName, Message: err.Error()})
		}
	}

	for _, cert := range cv.Certifications {
		if err := s.mergeNamedEdge(ctx, personKey, cert, graph.KindCertification, graph.RelEarned); err != nil {
			result.Errors = append(result.Errors, StepError{Step: "certifications", Item: cert, Message: err.Error()})
		}
	}

	if strings.TrimSpace(cv.Location) != "" {
		if err := s.mergeNamedEdge(ctx, personKey, cv.Location, graph.KindLocation, graph.RelLocatedIn); err != nil {
			result.Errors = append(result.Errors, StepError{Step: "location", Item: cv.Location, Message: err.Error()})
		}
	}

	result.Status = StatusSuccess
	if len(result.Errors) > 0 {
		result.Status = StatusPartialSuccess
		s.log.Warn("person upsert finished with step errors",
			"person", personKey, "failed_steps", len(result.Errors))
	}
	recordRun(ctx, s.log, s.runs, "cv", cv.FullName, result.Status, result.SkillsAdded, len(cv.Skills), result.Errors)
	return result, nil
}

func (s *CVService) mergeSkill(ctx context.Context, personKey string, skill domain.CVSkill) error {
	skillKey, err := normalization.CanonicalKey(skill.SkillName)
	if err != nil {
		return err
	}
	profKey, err := normalization.CanonicalKey(string(skill.Proficiency))
	if err != nil {
		return fmt.Errorf("proficiency: %w", err)
	}
	prof := domain.ProficiencyLevel(profKey)
	if prof.Ordinal() == 0 {
		return fmt.Errorf("unknown proficiency %q", skill.Proficiency)
	}
	if err := s.store.MergeNode(ctx, graph.KindSkill, skillKey, graph.Props{"name": skillKey}); err != nil {
		return err
	}
	return s.store.MergeEdge(ctx, graph.RelHasSkill, personKey, skillKey, graph.Props{"proficiency": string(prof)})
}

// mergeNamedEdge covers the name-only satellites: Company, University,
// Certification and Location.
func (s *CVService) mergeNamedEdge(ctx context.Context, personKey, rawName string, kind graph.NodeKind, rel graph.RelKind) error {
	key, err := normalization.CanonicalKey(rawName)
	if err != nil {
		return err
	}
	if err := s.store.MergeNode(ctx, kind, key, graph.Props{"name": key}); err != nil {
		return err
	}
	return s.store.MergeEdge(ctx, rel, personKey, key, graph.Props{})
}

// ListProgrammers returns every Person with skills, location and the project
// they are currently committed to (latest end date among active/planned).
func (s *CVService) ListProgrammers(ctx context.Context) ([]domain.ProgrammerRead, error) {
	persons, err := s.store.ListNodes(ctx, graph.KindPerson)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProgrammerRead, 0, len(persons))
	for _, p := range persons {
		read := domain.ProgrammerRead{
			ID:    p.Key,
			Name:  p.Props.String("name"),
			Email: p.Props.String("email"),
		}
		if read.Name == "" {
			read.Name = p.Key
		}

		skills, err := s.store.OutEdges(ctx, p.Key, graph.RelHasSkill)
		if err != nil {
			return nil, err
		}
		for _, e := range skills {
			read.Skills = append(read.Skills, domain.ProgrammerSkill{
				Name:        e.ToKey,
				Proficiency: domain.ProficiencyLevel(e.Props.String("proficiency")),
			})
		}

		locations, err := s.store.OutEdges(ctx, p.Key, graph.RelLocatedIn)
		if err != nil {
			return nil, err
		}
		if len(locations) > 0 {
			read.Location = locations[0].ToKey
		}

		current, err := currentCommitment(ctx, s.store, p.Key)
		if err != nil {
			return nil, err
		}
		if current != nil {
			read.CurrentProject = current.projectTitle
		}
		out = append(out, read)
	}
	return out, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/normalization"
	pkgerrors "github.com/yungbote/staffing-graph-backend/internal/pkg/errors"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/repos"
)

// ProjectService ingests projects in bulk and serves the project list view.
type ProjectService struct {
	store       graph.Store
	log         *logger.Logger
	runs        repos.IngestionRunRepo
	bulkWorkers int
}

func NewProjectService(store graph.Store, baseLog *logger.Logger, runs repos.IngestionRunRepo, bulkWorkers int) *ProjectService {
	if bulkWorkers <= 0 {
		bulkWorkers = 4
	}
	return &ProjectService{
		store:       store,
		log:         baseLog.With("service", "ProjectService"),
		runs:        runs,
		bulkWorkers: bulkWorkers,
	}
}

// UpsertProject merges one project with its requirements and assignments.
// Per-item failures (bad skill names, unknown programmers) are collected and
// returned; they do not undo the parts that applied.
func (s *ProjectService) UpsertProject(ctx context.Context, p domain.ProjectStructure) ([]StepError, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: blank project id", pkgerrors.ErrInvalidIdentifier)
	}

	props := graph.Props{
		"title":       strings.TrimSpace(p.Name),
		"description": strings.TrimSpace(p.Description),
		"client":      strings.TrimSpace(p.Client),
		"status":      string(p.Status),
		"team_size":   p.TeamSize,
	}
	if v := strings.TrimSpace(p.StartDate); v != "" {
		props["start_date"] = v
	}
	if v := strings.TrimSpace(p.EndDate); v != "" {
		props["end_date"] = v
	}
	if p.Budget > 0 {
		props["budget"] = p.Budget
	}
	if err := s.store.MergeNode(ctx, graph.KindProject, id, props); err != nil {
		return nil, err
	}

	var stepErrs []StepError

	for _, req := range p.Requirements {
		if err := s.mergeRequirement(ctx, id, req); err != nil {
			stepErrs = append(stepErrs, StepError{Step: "requirements", Item: req.SkillName, Message: err.Error()})
		}
	}

	// Completed projects keep history as WORKED_ON; everything else is a
	// live ASSIGNED_TO commitment that matching counts against availability.
	rel := graph.RelAssignedTo
	if p.Status.Historical() {
		rel = graph.RelWorkedOn
	}
	for _, a := range p.AssignedProgrammers {
		if err := s.mergeAssignment(ctx, id, rel, a); err != nil {
			stepErrs = append(stepErrs, StepError{Step: "assignments", Item: a.ProgrammerName, Message: err.Error()})
		}
	}
	return stepErrs, nil
}

func (s *ProjectService) mergeRequirement(ctx context.Context, projectID string, req domain.ProjectRequirement) error {
	skillKey, err := normalization.CanonicalKey(req.SkillName)
	if err != nil {
		return err
	}
	profKey, err := normalization.CanonicalKey(string(req.MinProficiency))
	if err != nil {
		return fmt.Errorf("min_proficiency: %w", err)
	}
	prof := domain.ProficiencyLevel(profKey)
	if prof.Ordinal() == 0 {
		return fmt.Errorf("unknown proficiency %q", req.MinProficiency)
	}
	if err := s.store.MergeNode(ctx, graph.KindSkill, skillKey, graph.Props{"name": skillKey}); err != nil {
		return err
	}
	return s.store.MergeEdge(ctx, graph.RelRequires, projectID, skillKey, graph.Props{
		"minimum_level": string(prof),
		"mandatory":     req.IsMandatory,
	})
}

func (s *ProjectService) mergeAssignment(ctx context.Context, projectID string, rel graph.RelKind, a domain.AssignedProgrammer) error {
	personKey, err := normalization.CanonicalKey(a.ProgrammerName)
	if err != nil {
		return err
	}
	// Assignments never create people; an unknown programmer is a data error
	// in the bulk file, not a new identity.
	if _, err := s.store.GetNode(ctx, graph.KindPerson, personKey); err != nil {
		return err
	}
	props := graph.Props{}
	if v := strings.TrimSpace(a.AssignmentStartDate); v != "" {
		props["start_date"] = v
	}
	if v := strings.TrimSpace(a.AssignmentEndDate); v != "" {
		props["end_date"] = v
	}
	return s.store.MergeEdge(ctx, rel, personKey, projectID, props)
}

// BulkUpsertProjects ingests a batch concurrently. Item failures are
// collected; the batch never aborts part-way because of one bad project.
func (s *ProjectService) BulkUpsertProjects(ctx context.Context, projects []domain.ProjectStructure) *BulkResult {
	result := &BulkResult{Total: len(projects)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.bulkWorkers)
	for _, p := range projects {
		g.Go(func() error {
			stepErrs, err := s.UpsertProject(gctx, p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("ID %s : %v", p.ID, err))
				return nil
			}
			for _, se := range stepErrs {
				result.Errors = append(result.Errors, fmt.Sprintf("ID %s : %s %s: %s", p.ID, se.Step, se.Item, se.Message))
			}
			result.Processed++
			return nil
		})
	}
	_ = g.Wait()

	result.Status = StatusSuccess
	if len(result.Errors) > 0 {
		result.Status = StatusPartialSuccess
	}
	s.log.Info("bulk project ingestion finished",
		"processed", result.Processed, "total", result.Total, "errors", len(result.Errors))
	recordRun(ctx, s.log, s.runs, "projects", "", result.Status, result.Processed, result.Total, result.Errors)
	return result
}

// ListProjects returns projects with required skills and team members,
// current and historical.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.ProjectRead, error) {
	nodes, err := s.store.ListNodes(ctx, graph.KindProject)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProjectRead, 0, len(nodes))
	for _, n := range nodes {
		read := domain.ProjectRead{
			ID:          n.Key,
			Title:       n.Props.String("title"),
			Client:      n.Props.String("client"),
			Status:      domain.ProjectStatus(n.Props.String("status")),
			Description: n.Props.String("description"),
			StartDate:   n.Props.String("start_date"),
			EndDate:     n.Props.String("end_date"),
		}
		reqs, err := s.store.OutEdges(ctx, n.Key, graph.RelRequires)
		if err != nil {
			return nil, err
		}
		for _, e := range reqs {
			read.RequiredSkills = append(read.RequiredSkills, e.ToKey)
		}
		for _, rel := range []graph.RelKind{graph.RelAssignedTo, graph.RelWorkedOn} {
			members, err := s.store.InEdges(ctx, n.Key, rel)
			if err != nil {
				return nil, err
			}
			for _, e := range members {
				read.AssignedTeam = append(read.AssignedTeam, domain.TeamMember{ID: e.FromKey, Name: e.FromKey})
			}
		}
		out = append(out, read)
	}
	return out, nil
}

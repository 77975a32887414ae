package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yungbote/staffing-graph-backend/internal/clients/redis"
	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/normalization"
	pkgerrors "github.com/yungbote/staffing-graph-backend/internal/pkg/errors"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/repos"
)

const rfpIDPrefix = "RFP-"

// RFPService owns the RFP lifecycle up to conversion. Unlike person and
// skill identities, an RFP id is a one-time creation: saving over an
// existing id fails instead of silently replacing an open request.
type RFPService struct {
	store graph.Store
	log   *logger.Logger
	runs  repos.IngestionRunRepo
	cache *redis.MatchCache
}

func NewRFPService(store graph.Store, baseLog *logger.Logger, runs repos.IngestionRunRepo, cache *redis.MatchCache) *RFPService {
	return &RFPService{
		store: store,
		log:   baseLog.With("service", "RFPService"),
		runs:  runs,
		cache: cache,
	}
}

// SaveRFP creates the RFP node and its NEEDS edges. Requirements that fail
// canonicalization are skipped and reported; the save itself still applies.
func (s *RFPService) SaveRFP(ctx context.Context, rfp domain.RFPStructure) (*RFPSaveResult, error) {
	id := strings.TrimSpace(rfp.ID)
	if id == "" {
		next, err := s.NextRFPID(ctx)
		if err != nil {
			return nil, err
		}
		id = next
	}

	if _, err := s.store.GetNode(ctx, graph.KindRFP, id); err == nil {
		return nil, fmt.Errorf("%w: RFP %q", pkgerrors.ErrDuplicateID, id)
	} else if !isNotFound(err) {
		return nil, err
	}

	props := graph.Props{
		"title":          strings.TrimSpace(rfp.Title),
		"client":         strings.TrimSpace(rfp.Client),
		"description":    strings.TrimSpace(rfp.Description),
		"budget":         strings.TrimSpace(rfp.BudgetRange),
		"start_date":     strings.TrimSpace(rfp.StartDate),
		"deadline":       strings.TrimSpace(rfp.StartDate),
		"team_size":      rfp.TeamSize,
		"remote_allowed": rfp.RemoteAllowed,
	}
	if rfp.DurationMonths > 0 {
		props["duration_months"] = rfp.DurationMonths
	}
	if v := strings.TrimSpace(rfp.ProjectType); v != "" {
		props["project_type"] = v
	}
	if v := strings.TrimSpace(rfp.Location); v != "" {
		props["location"] = v
	}
	if err := s.store.MergeNode(ctx, graph.KindRFP, id, props); err != nil {
		return nil, err
	}

	result := &RFPSaveResult{ID: id, Status: StatusSuccess}
	for _, req := range rfp.Requirements {
		if err := s.mergeRequirement(ctx, id, req); err != nil {
			result.Errors = append(result.Errors, StepError{Step: "requirements", Item: req.SkillName, Message: err.Error()})
		}
	}
	if len(result.Errors) > 0 {
		result.Status = StatusPartialSuccess
	}

	s.cache.Invalidate(ctx, id)
	s.log.Info("saved RFP", "rfp_id", id, "requirements", len(rfp.Requirements))
	recordRun(ctx, s.log, s.runs, "rfp", id, result.Status, len(rfp.Requirements)-len(result.Errors), len(rfp.Requirements), result.Errors)
	return result, nil
}

func (s *RFPService) mergeRequirement(ctx context.Context, rfpID string, req domain.SkillRequirement) error {
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
	return s.store.MergeEdge(ctx, graph.RelNeeds, rfpID, skillKey, graph.Props{
		"proficiency": string(prof),
		"mandatory":   req.IsMandatory,
	})
}

// NextRFPID returns the next id in the RFP-### sequence. Converted RFPs live
// on as PROJ-RFP-### projects, so those are scanned too; otherwise the
// sequence could hand out an id a conversion already consumed.
func (s *RFPService) NextRFPID(ctx context.Context) (string, error) {
	maxSeq := 0
	rfps, err := s.store.ListNodes(ctx, graph.KindRFP)
	if err != nil {
		return "", err
	}
	for _, n := range rfps {
		if v, ok := rfpSequence(n.Key); ok && v > maxSeq {
			maxSeq = v
		}
	}
	projects, err := s.store.ListNodes(ctx, graph.KindProject)
	if err != nil {
		return "", err
	}
	for _, n := range projects {
		if v, ok := rfpSequence(strings.TrimPrefix(n.Key, "PROJ-")); ok && v > maxSeq {
			maxSeq = v
		}
	}
	return fmt.Sprintf("%s%03d", rfpIDPrefix, maxSeq+1), nil
}

func rfpSequence(id string) (int, bool) {
	if !strings.HasPrefix(id, rfpIDPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, rfpIDPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ListRFPs returns open RFPs with their needed skills.
func (s *RFPService) ListRFPs(ctx context.Context) ([]domain.RFPRead, error) {
	nodes, err := s.store.ListNodes(ctx, graph.KindRFP)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RFPRead, 0, len(nodes))
	for _, n := range nodes {
		read := domain.RFPRead{
			ID:        n.Key,
			Title:     n.Props.String("title"),
			Client:    n.Props.String("client"),
			Budget:    n.Props.String("budget"),
			StartDate: n.Props.String("start_date"),
		}
		needs, err := s.store.OutEdges(ctx, n.Key, graph.RelNeeds)
		if err != nil {
			return nil, err
		}
		for _, e := range needs {
			read.NeededSkills = append(read.NeededSkills, domain.RFPSkillRead{
				Name:      e.ToKey,
				Level:     domain.ProficiencyLevel(e.Props.String("proficiency")),
				Mandatory: e.Props.Bool("mandatory"),
			})
		}
		out = append(out, read)
	}
	return out, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, pkgerrors.ErrNotFound)
}
